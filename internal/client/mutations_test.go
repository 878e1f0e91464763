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

func adminEndpoints(snapshotLoads *atomic.Int64, failMutation bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		snapshotLoads.Add(1)
		writeJSON(w, http.StatusOK, models.User{ID: 1, IsAdmin: true})
	})
	mux.HandleFunc("/api/admin/orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Order{})
	})
	mux.HandleFunc("/api/admin/accounts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Account{})
	})
	mux.HandleFunc("/api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.User{})
	})
	mux.HandleFunc("/api/admin/orders/7", func(w http.ResponseWriter, r *http.Request) {
		if failMutation {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid status"})
			return
		}
		writeJSON(w, http.StatusOK, models.Order{ID: 7, Status: "paid"})
	})
	mux.HandleFunc("/api/admin/users/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
	})
	return mux
}

func TestDispatcherReloadAfterWrite(t *testing.T) {
	t.Run("successful mutation triggers exactly one reload", func(t *testing.T) {
		var snapshotLoads atomic.Int64
		c, store := newTestClient(t, adminEndpoints(&snapshotLoads, false))
		require.NoError(t, store.Set("admin-tok"))

		d := NewDispatcher(c, NewLoader(c))
		snap, err := d.UpdateOrderStatus(context.Background(), 7, "paid")
		require.NoError(t, err)
		require.NotNil(t, snap)
		// /api/auth/me is hit once per snapshot load.
		assert.EqualValues(t, 1, snapshotLoads.Load())
	})

	t.Run("failed mutation does not reload", func(t *testing.T) {
		var snapshotLoads atomic.Int64
		c, store := newTestClient(t, adminEndpoints(&snapshotLoads, true))
		require.NoError(t, store.Set("admin-tok"))

		d := NewDispatcher(c, NewLoader(c))
		snap, err := d.UpdateOrderStatus(context.Background(), 7, "bogus")
		require.Error(t, err)
		assert.Equal(t, "Invalid status", err.Error())
		assert.Nil(t, snap)
		assert.EqualValues(t, 0, snapshotLoads.Load())
	})

	t.Run("delete user reloads the full admin snapshot", func(t *testing.T) {
		var snapshotLoads atomic.Int64
		c, store := newTestClient(t, adminEndpoints(&snapshotLoads, false))
		require.NoError(t, store.Set("admin-tok"))

		d := NewDispatcher(c, NewLoader(c))
		snap, err := d.DeleteUser(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, snap)
		assert.EqualValues(t, 1, snapshotLoads.Load())
	})
}

func TestDispatcherErrorFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.Set("tok"))

	d := NewDispatcher(c, NewLoader(c))
	_, err := d.AddAccount(context.Background(), "warmme", "fitness")
	require.Error(t, err)
	assert.Equal(t, "Failed to add account", err.Error())
}
