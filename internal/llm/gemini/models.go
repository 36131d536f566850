package gemini

// Model name constants for Gemini API
// Gemini requires full model names
const (
	ModelFlash = "gemini-2.5-flash"
	ModelPro   = "gemini-2.5-pro"
)

// DefaultModel returns the default Gemini model
func DefaultModel() string {
	return ModelFlash
}
