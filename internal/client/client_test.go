package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"warmup/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *MemoryTokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := &MemoryTokenStore{}
	session := NewSession(store)
	return New(server.URL, session, zerolog.Nop()), store
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	t.Run("stores token on success", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.AuthResponse{
				Token: "tok-123",
				User:  &models.User{ID: 1, Email: "user@example.com"},
			})
		})

		c, store := newTestClient(t, mux)
		user, err := c.Login(context.Background(), "user@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", user.Email)

		token, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, "tok-123", token)
	})

	t.Run("surfaces server error message", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid credentials"})
		})

		c, store := newTestClient(t, mux)
		_, err := c.Login(context.Background(), "user@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", err.Error())

		_, err = store.Get()
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("falls back to generic message when body has no error field", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{})
		})

		c, _ := newTestClient(t, mux)
		_, err := c.Login(context.Background(), "user@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, "Login failed", err.Error())
	})
}

func TestAdminLogin(t *testing.T) {
	t.Run("admin identity proceeds and persists token", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.AuthResponse{Token: "admin-tok", User: &models.User{ID: 1}})
		})
		mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer admin-tok", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, models.User{ID: 1, Email: "admin@warmup.ai", IsAdmin: true})
		})

		c, store := newTestClient(t, mux)
		user, err := c.AdminLogin(context.Background(), "admin@warmup.ai", "secret123")
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)

		token, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, "admin-tok", token)
	})

	t.Run("non-admin identity is denied and no token persists", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.AuthResponse{Token: "client-tok", User: &models.User{ID: 2}})
		})
		mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.User{ID: 2, Email: "user@example.com", IsAdmin: false})
		})

		c, store := newTestClient(t, mux)
		_, err := c.AdminLogin(context.Background(), "user@example.com", "secret123")
		require.Error(t, err)
		assert.Equal(t, "Access denied. Admin credentials required.", err.Error())

		_, err = store.Get()
		assert.ErrorIs(t, err, ErrNoToken)
	})
}

func TestBearerAttachment(t *testing.T) {
	var gotAuth atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []models.Order{})
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok-xyz"))

	_, err := c.Orders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth.Load())
}

func TestUnauthorizedResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token is invalid"})
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("stale"))

	_, err := c.Orders(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}
