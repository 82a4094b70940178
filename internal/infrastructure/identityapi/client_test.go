package identityapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoAmI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/whoami", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"username": "dana",
			"roles":    []string{"workshop:operator", "viewer"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	profile, err := c.WhoAmI(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "dana", profile.Username)
	assert.Equal(t, []string{"workshop:operator", "viewer"}, profile.Roles)
}

func TestWhoAmIMissingCredential(t *testing.T) {
	c := NewHTTPClient("http://example.invalid", time.Second)
	_, err := c.WhoAmI(context.Background(), "")
	assert.ErrorContains(t, err, "missing credential")
}

func TestWhoAmIRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("expired"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.WhoAmI(context.Background(), "stale")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "expired")
}

func TestWhoAmINoUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"roles": []string{"viewer"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.WhoAmI(context.Background(), "token")
	assert.ErrorContains(t, err, "no username")
}
