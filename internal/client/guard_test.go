package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"warmup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	t.Run("no token is unauthenticated before any network call", func(t *testing.T) {
		var requests atomic.Int64
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			writeJSON(w, http.StatusOK, models.User{})
		})

		c, _ := newTestClient(t, mux)
		state, user, err := NewGuard(c).Check(context.Background(), RoleClient)
		require.NoError(t, err)
		assert.Equal(t, Unauthenticated, state)
		assert.Nil(t, user)
		assert.EqualValues(t, 0, requests.Load(), "guard must not touch the network without a token")
	})

	t.Run("non-admin token on admin route is forbidden", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.User{ID: 2, Email: "user@example.com", IsAdmin: false})
		})

		c, store := newTestClient(t, mux)
		require.NoError(t, store.Set("client-tok"))

		state, user, err := NewGuard(c).Check(context.Background(), RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, Forbidden, state)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("admin token on admin route is authorized", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.User{ID: 1, IsAdmin: true})
		})

		c, store := newTestClient(t, mux)
		require.NoError(t, store.Set("admin-tok"))

		state, _, err := NewGuard(c).Check(context.Background(), RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, Authorized, state)
	})

	t.Run("rejected token clears the session", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token is invalid"})
		})

		c, store := newTestClient(t, mux)
		require.NoError(t, store.Set("expired"))

		state, _, err := NewGuard(c).Check(context.Background(), RoleClient)
		require.NoError(t, err)
		assert.Equal(t, Unauthenticated, state)

		_, err = store.Get()
		assert.ErrorIs(t, err, ErrNoToken)
	})
}
