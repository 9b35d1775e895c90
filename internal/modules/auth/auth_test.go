package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushmaan100/Smart-content-finder/internal/middleware"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/identity"
)

func init() { gin.SetMode(gin.TestMode) }

type oneUser struct{}

func (oneUser) Verify(_ context.Context, token string) (*identity.Identity, error) {
	if token != "tok" {
		return nil, identity.ErrInvalidToken
	}
	return &identity.Identity{ID: "u-1", Email: "a@b.c", Role: "authenticated"}, nil
}

func newRouter() *gin.Engine {
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group(""), middleware.Auth(oneUser{}))
	return r
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","area":"auth"}`, rec.Body.String())
}

func TestMe(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u-1","email":"a@b.c","role":"authenticated"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
