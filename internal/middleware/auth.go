package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/identity"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/response"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyIdentity = "identity"
)

// Auth returns a middleware that resolves the bearer token through verifier.
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.TrimSpace(header) == "" {
			response.Unauthorized(c, "Missing Authorization header")
			return
		}

		token := NormalizeToken(header)
		if token == "" {
			response.Unauthorized(c, "Invalid token")
			return
		}

		user, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrUnavailable) {
				_ = c.Error(err)
				response.BadGateway(c, "Identity provider unavailable")
				return
			}
			response.Unauthorized(c, "Invalid token")
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyIdentity, user)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentIdentity returns the verified identity, or nil on public routes.
func CurrentIdentity(c *gin.Context) *identity.Identity {
	v, _ := c.Get(ContextKeyIdentity)
	user, _ := v.(*identity.Identity)
	return user
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.EqualFold(token, "bearer") {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
