package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/identity"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	users map[string]*identity.Identity
	err   error
}

func (s stubVerifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, identity.ErrInvalidToken
}

func newAuthRouter(v identity.Verifier) *gin.Engine {
	r := gin.New()
	r.GET("/who", Auth(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "email": CurrentIdentity(c).Email})
	})
	return r
}

func doRequest(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAuth(t *testing.T) {
	v := stubVerifier{users: map[string]*identity.Identity{"tok": {ID: "u-1", Email: "a@b.c"}}}
	r := newAuthRouter(v)

	rec := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing Authorization header", decodeMessage(t, rec))

	rec = doRequest(r, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeMessage(t, rec))

	rec = doRequest(r, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(r, "Bearer tok")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u-1","email":"a@b.c"}`, rec.Body.String())
}

func TestAuthProviderDown(t *testing.T) {
	r := newAuthRouter(stubVerifier{err: errors.Join(identity.ErrUnavailable, errors.New("dial tcp"))})
	rec := doRequest(r, "Bearer tok")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Equal(t, "", NormalizeToken("Bearer"))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestLocalLimiter(t *testing.T) {
	l := NewLocalLimiter(2, time.Hour)
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok)
}

func TestLocalLimiterDropsIdleBuckets(t *testing.T) {
	clock := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(1, time.Minute)
	l.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		ok, err := l.Allow(ctx, fmt.Sprintf("ip:10.0.%d.%d", i/256, i%256))
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Len(t, l.buckets, 1000)

	clock = clock.Add(30 * time.Second)
	ok, _ := l.Allow(ctx, "ip:10.0.0.7")
	assert.False(t, ok)

	clock = clock.Add(30 * time.Second)
	ok, _ = l.Allow(ctx, "ip:192.168.1.1")
	assert.True(t, ok)
	assert.Len(t, l.buckets, 2)
	assert.Contains(t, l.buckets, "ip:10.0.0.7")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return true, errors.New("redis down")
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/work", RateLimit(NewLocalLimiter(1, time.Minute), time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/work", nil))
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/work", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.POST("/work", RateLimit(failingLimiter{}, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/work", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoggerAndMetrics(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Logger(zap.NewNop()), Metrics(m))
	r.GET("/summary/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary/123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	out := httptest.NewRecorder()
	m.Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, out.Body.String(), `route="/summary/:id"`)
}
