package client

import (
	"context"
	"net/http"
	"testing"

	"warmup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientEndpoints(fail string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if fail == "me" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, models.User{ID: 1, Email: "user@example.com"})
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if fail == "orders" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, []models.Order{{ID: 10, Plan: "starter", Status: "paid", Amount: 29900}})
	})
	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		if fail == "accounts" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{not json"))
			return
		}
		writeJSON(w, http.StatusOK, []models.Account{{ID: 5, Username: "warmme", Status: "warming"}})
	})
	return mux
}

func TestLoaderSnapshot(t *testing.T) {
	t.Run("all fetches succeed", func(t *testing.T) {
		c, store := newTestClient(t, clientEndpoints(""))
		require.NoError(t, store.Set("tok"))

		snap, err := NewLoader(c).Load(context.Background(), RoleClient)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", snap.User.Email)
		require.Len(t, snap.Orders, 1)
		require.Len(t, snap.Accounts, 1)
		assert.Nil(t, snap.Users)
	})

	t.Run("one failing fetch fails the whole load", func(t *testing.T) {
		c, store := newTestClient(t, clientEndpoints("orders"))
		require.NoError(t, store.Set("tok"))

		snap, err := NewLoader(c).Load(context.Background(), RoleClient)
		require.Error(t, err)
		assert.Nil(t, snap, "no partial snapshot may be applied")
	})

	t.Run("unparsable body fails the whole load", func(t *testing.T) {
		c, store := newTestClient(t, clientEndpoints("accounts"))
		require.NoError(t, store.Set("tok"))

		snap, err := NewLoader(c).Load(context.Background(), RoleClient)
		require.Error(t, err)
		assert.Nil(t, snap)
	})

	t.Run("auth failure clears the session", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token is invalid"})
		})

		c, store := newTestClient(t, mux)
		require.NoError(t, store.Set("expired"))

		_, err := NewLoader(c).Load(context.Background(), RoleClient)
		assert.ErrorIs(t, err, ErrUnauthorized)

		_, err = store.Get()
		assert.ErrorIs(t, err, ErrNoToken)
	})
}

func TestLoaderAdminSnapshot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.User{ID: 1, IsAdmin: true})
	})
	mux.HandleFunc("/api/admin/orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Order{{ID: 1, UserEmail: "a@b.c"}})
	})
	mux.HandleFunc("/api/admin/accounts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Account{})
	})
	mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.User{{ID: 1}, {ID: 2}})
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("admin-tok"))

	snap, err := NewLoader(c).Load(context.Background(), RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 2)
	assert.Len(t, snap.Orders, 1)
}

func TestSnapshotHasPaidOrder(t *testing.T) {
	paid := &Snapshot{Orders: []models.Order{{Status: models.OrderStatusPending}, {Status: models.OrderStatusPaid}}}
	assert.True(t, paid.HasPaidOrder())

	unpaid := &Snapshot{Orders: []models.Order{{Status: models.OrderStatusPending}}}
	assert.False(t, unpaid.HasPaidOrder())

	empty := &Snapshot{}
	assert.False(t, empty.HasPaidOrder())
}
