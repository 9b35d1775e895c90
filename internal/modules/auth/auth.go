// Package auth exposes the identity endpoints. Sign-in itself happens against
// the identity provider from the client; this service only verifies tokens.
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/ayushmaan100/Smart-content-finder/internal/middleware"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/response"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.GET("/health", h.health)
	g.GET("/me", authMW, h.me)
}

// GET /auth/health
func (h *Handler) health(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok", "area": "auth"})
}

// GET /auth/me
func (h *Handler) me(c *gin.Context) {
	user := middleware.CurrentIdentity(c)
	if user == nil {
		response.Unauthorized(c, "")
		return
	}
	response.OK(c, user)
}
