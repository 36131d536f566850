package llm

// Option configures provider behavior
type Option func(*GenerateOptions)

// GenerateOptions holds configuration for Generate calls.
// Zero values mean "use the provider default".
type GenerateOptions struct {
	Model       string
	MaxTokens   int
	Temperature *float64
}

// WithModel overrides the model for this generation
func WithModel(model string) Option {
	return func(opts *GenerateOptions) {
		opts.Model = model
	}
}

// WithMaxTokens caps the number of generated tokens
func WithMaxTokens(n int) Option {
	return func(opts *GenerateOptions) {
		opts.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) Option {
	return func(opts *GenerateOptions) {
		opts.Temperature = &t
	}
}

// BuildOptions constructs GenerateOptions from Option functions
// Exported for use by provider implementations
func BuildOptions(opts []Option) *GenerateOptions {
	options := &GenerateOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
