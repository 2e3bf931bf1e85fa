package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTokenVerifier is a mock implementation of port.TokenVerifier.
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}
