package cmd

// This file contains mock implementations used across different test files
// within the cmd package, but which need to be accessible from outside
// _test.go files (e.g., for integration tests).

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// --- Mock Suggester ---

// MockSuggester is a mock implementation of the suggest.Suggester interface.
// Exported for use in integration tests.
type MockSuggester struct {
	mock.Mock // Implements suggest.Suggester
}

// Suggest matches the suggest.Suggester interface
func (m *MockSuggester) Suggest(ctx context.Context, field, currentValue string) (string, error) {
	args := m.Called(ctx, field, currentValue)
	return args.String(0), args.Error(1)
}
