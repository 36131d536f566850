package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider using testify/mock.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Generate(ctx context.Context, messages []Message, opts ...Option) (string, error) {
	args := m.Called(ctx, messages, BuildOptions(opts))
	return args.String(0), args.Error(1)
}

func (m *MockProvider) DefaultModel() string {
	return "mock-model"
}

func (m *MockProvider) Name() string {
	return "mock"
}
