// Package identity verifies bearer tokens issued by the external identity
// provider (Supabase GoTrue).
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/jwt"
)

var (
	// ErrInvalidToken means the provider rejected the token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnavailable means the provider could not be reached.
	ErrUnavailable = errors.New("identity provider unavailable")
)

// Identity is the authenticated user as reported by the provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Verifier resolves a raw bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// SupabaseVerifier asks the provider's /auth/v1/user endpoint about every token.
type SupabaseVerifier struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewSupabaseVerifier(baseURL, anonKey string, timeout time.Duration) *SupabaseVerifier {
	return &SupabaseVerifier{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		anonKey: strings.TrimSpace(anonKey),
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	if v.baseURL == "" {
		return nil, fmt.Errorf("%w: supabase url is not configured", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.anonKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: provider returned status %d", ErrInvalidToken, resp.StatusCode)
	}

	var user Identity
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", ErrUnavailable, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: provider returned no user id", ErrInvalidToken)
	}
	return &user, nil
}

// JWTVerifier checks tokens locally against the project's JWT secret, avoiding
// a network round trip per request.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims, err := jwt.Parse(v.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Identity{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

// New picks the local verifier when a JWT secret is configured, otherwise the remote one.
func New(supabaseURL, anonKey, jwtSecret string, timeout time.Duration) Verifier {
	if secret := strings.TrimSpace(jwtSecret); secret != "" {
		return NewJWTVerifier(secret)
	}
	return NewSupabaseVerifier(supabaseURL, anonKey, timeout)
}
