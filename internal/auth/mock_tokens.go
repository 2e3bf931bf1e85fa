// Package auth holds token verification helpers shared by the identity providers.
package auth

import (
	"context"
	"strings"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

// MockTokenPrefix marks development tokens that carry the user id in clear text.
const MockTokenPrefix = "mock-id-token-for-"

// MockTokenVerifier accepts "mock-id-token-for-<uid>" tokens and delegates
// every other token to Next. It must only be enabled for local development.
type MockTokenVerifier struct {
	Next port.TokenVerifier
}

// WithMockTokens wraps next so that mock tokens are accepted when enabled.
func WithMockTokens(next port.TokenVerifier, enabled bool) port.TokenVerifier {
	if !enabled {
		return next
	}
	return &MockTokenVerifier{Next: next}
}

func (m *MockTokenVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if uid, ok := strings.CutPrefix(token, MockTokenPrefix); ok {
		if uid == "" {
			return "", domain.ErrInvalidToken
		}
		return uid, nil
	}
	if m.Next == nil {
		return "", domain.ErrInvalidToken
	}
	return m.Next.VerifyToken(ctx, token)
}
