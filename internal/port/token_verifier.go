package port

import "context"

// TokenVerifier validates a bearer token issued by the identity provider and
// returns the stable user id it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}
