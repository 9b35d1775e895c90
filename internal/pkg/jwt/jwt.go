package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DefaultAudience is the audience Supabase stamps on user access tokens.
const DefaultAudience = "authenticated"

var ErrInvalid = errors.New("invalid token")

// Claims is the subset of the Supabase access-token payload the backend reads.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// Sign creates an HS256 token for userID. It mirrors what the identity provider
// issues and is used by tooling and tests.
func Sign(secret []byte, userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  DefaultAudience,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			Audience:  jwtlib.ClaimStrings{DefaultAudience},
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse validates an HS256 token against secret and returns the claims.
func Parse(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwtlib.WithAudience(DefaultAudience), jwtlib.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
