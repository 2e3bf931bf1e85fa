package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/auth"
	"beachtrack/internal/domain"
	"beachtrack/mocks"
)

func TestWithMockTokens_Enabled(t *testing.T) {
	next := new(mocks.MockTokenVerifier)
	v := auth.WithMockTokens(next, true)

	uid, err := v.VerifyToken(context.Background(), "mock-id-token-for-alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", uid)
	next.AssertNumberOfCalls(t, "VerifyToken", 0)
}

func TestWithMockTokens_EmptyUID(t *testing.T) {
	v := auth.WithMockTokens(nil, true)

	_, err := v.VerifyToken(context.Background(), auth.MockTokenPrefix)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestWithMockTokens_DelegatesRealTokens(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.MockTokenVerifier)
	next.On("VerifyToken", ctx, "real.jwt.token").Return("bob", nil)
	v := auth.WithMockTokens(next, true)

	uid, err := v.VerifyToken(ctx, "real.jwt.token")

	require.NoError(t, err)
	assert.Equal(t, "bob", uid)
	next.AssertExpectations(t)
}

func TestWithMockTokens_Disabled(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.MockTokenVerifier)
	next.On("VerifyToken", ctx, "mock-id-token-for-alice").Return("", domain.ErrInvalidToken)
	v := auth.WithMockTokens(next, false)

	_, err := v.VerifyToken(ctx, "mock-id-token-for-alice")

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	next.AssertExpectations(t)
}
