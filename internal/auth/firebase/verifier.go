// Package firebase verifies Firebase Authentication ID tokens.
package firebase

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

const (
	certsURL      = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	issuerPrefix  = "https://securetoken.google.com/"
	defaultMaxAge = time.Hour

	// minRefreshInterval bounds how often an unknown kid can trigger a
	// refetch while the cached certificates are still fresh.
	minRefreshInterval = time.Minute
)

// Verifier validates Firebase ID tokens against Google's published signing
// certificates. Certificates are cached for the max-age the endpoint returns.
// Concurrent refreshes share a single fetch.
type Verifier struct {
	projectID  string
	certsURL   string
	httpClient *http.Client
	now        func() time.Time
	group      singleflight.Group

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
	fetchedAt time.Time
}

// NewVerifier creates a verifier for tokens issued to projectID.
func NewVerifier(projectID string) *Verifier {
	return newVerifier(projectID, "")
}

// NewVerifierWithCertsURL creates a verifier pointing at a custom certificate endpoint (for testing).
func NewVerifierWithCertsURL(projectID, url string) *Verifier {
	return newVerifier(projectID, url)
}

func newVerifier(projectID, url string) *Verifier {
	if url == "" {
		url = certsURL
	}
	return &Verifier{
		projectID: projectID,
		certsURL:  url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// VerifyToken validates the ID token and returns the Firebase user id (the "sub" claim).
func (v *Verifier) VerifyToken(ctx context.Context, idToken string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("missing kid header")
		}
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || len(claims.Subject) > 128 {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	k, ok := v.keys[kid]
	fresh := v.now().Before(v.expiresAt)
	v.mu.RUnlock()
	if ok && fresh {
		return k, nil
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if k, ok := v.keys[kid]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("unknown signing key %q", kid)
}

// refresh reloads the certificates unless a fetch completed within
// minRefreshInterval and its result has not expired.
func (v *Verifier) refresh(ctx context.Context) error {
	_, err, _ := v.group.Do("certs", func() (interface{}, error) {
		v.mu.RLock()
		now := v.now()
		recent := now.Before(v.expiresAt) && now.Sub(v.fetchedAt) < minRefreshInterval
		v.mu.RUnlock()
		if recent {
			return nil, nil
		}
		return nil, v.fetch(context.WithoutCancel(ctx))
	})
	return err
}

func (v *Verifier) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating certs request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching signing certs: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching signing certs: status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("decoding signing certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if err != nil {
			return fmt.Errorf("parsing cert %q: %w", kid, err)
		}
		keys[kid] = pub
	}

	now := v.now()
	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = now
	v.expiresAt = now.Add(maxAge(resp.Header.Get("Cache-Control")))
	v.mu.Unlock()
	return nil
}

// maxAge extracts max-age from a Cache-Control header.
func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		secs, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
		if err != nil || secs <= 0 {
			break
		}
		return time.Duration(secs) * time.Second
	}
	return defaultMaxAge
}

// Compile-time check.
var _ port.TokenVerifier = (*Verifier)(nil)
