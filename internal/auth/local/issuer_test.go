package local_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/auth/local"
	"beachtrack/internal/config"
	"beachtrack/internal/domain"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:   "test-secret",
		JWTIssuer:   "beachtrack-test",
		TokenExpiry: time.Hour,
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := local.NewIssuer(testConfig())

	token, expiresAt, err := iss.Issue("user-42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	uid, err := iss.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", uid)
}

func TestIssuer_EmptyUserID(t *testing.T) {
	_, _, err := local.NewIssuer(testConfig()).Issue("")

	assert.Error(t, err)
}

func TestIssuer_WrongSecret(t *testing.T) {
	token, _, err := local.NewIssuer(testConfig()).Issue("user-42")
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "different"
	_, err = local.NewIssuer(other).VerifyToken(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestIssuer_WrongIssuer(t *testing.T) {
	token, _, err := local.NewIssuer(testConfig()).Issue("user-42")
	require.NoError(t, err)

	other := testConfig()
	other.JWTIssuer = "someone-else"
	_, err = local.NewIssuer(other).VerifyToken(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestIssuer_Expired(t *testing.T) {
	cfg := testConfig()
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    cfg.JWTIssuer,
		Audience:  jwt.ClaimStrings{"beachtrack-api"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = local.NewIssuer(cfg).VerifyToken(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestIssuer_Garbage(t *testing.T) {
	_, err := local.NewIssuer(testConfig()).VerifyToken(context.Background(), "not.a.jwt")

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
