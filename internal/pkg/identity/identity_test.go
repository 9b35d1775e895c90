package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/jwt"
)

func newProvider(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@b.c","role":"authenticated"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSupabaseVerifier(t *testing.T) {
	srv := newProvider(t)
	v := NewSupabaseVerifier(srv.URL+"/", "anon", time.Second)

	user, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, &Identity{ID: "u-1", Email: "a@b.c", Role: "authenticated"}, user)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSupabaseVerifierUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewSupabaseVerifier(url, "anon", time.Second).Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = NewSupabaseVerifier("", "anon", time.Second).Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestJWTVerifier(t *testing.T) {
	token, err := jwt.Sign([]byte("s3cret"), "u-9", "x@y.z", time.Minute)
	require.NoError(t, err)

	user, err := NewJWTVerifier("s3cret").Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-9", user.ID)
	assert.Equal(t, "x@y.z", user.Email)

	_, err = NewJWTVerifier("other").Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSelectsVerifier(t *testing.T) {
	assert.IsType(t, &JWTVerifier{}, New("https://x.supabase.co", "anon", "secret", time.Second))
	assert.IsType(t, &SupabaseVerifier{}, New("https://x.supabase.co", "anon", "", time.Second))
}
