package client

import (
	"testing"

	"warmup/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFilterOrders(t *testing.T) {
	orders := []models.Order{
		{ID: 1, UserEmail: "alice@example.com", Plan: "starter"},
		{ID: 2, UserEmail: "bob@example.com", Plan: "growth"},
		{ID: 3, UserEmail: "carol@shop.io", Plan: "one_time"},
	}

	t.Run("matches email and plan case-insensitively", func(t *testing.T) {
		assert.Len(t, FilterOrders(orders, "ALICE"), 1)
		assert.Len(t, FilterOrders(orders, "growth"), 1)
		assert.Len(t, FilterOrders(orders, "example.com"), 2)
	})

	t.Run("empty term returns everything", func(t *testing.T) {
		assert.Len(t, FilterOrders(orders, ""), 3)
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := FilterOrders(orders, "example")
		twice := FilterOrders(once, "example")
		assert.Equal(t, once, twice)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		FilterOrders(orders, "alice")
		assert.Len(t, orders, 3)
	})
}

func TestFilterAccounts(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, Username: "fit_daily", UserEmail: "alice@example.com"},
		{ID: 2, Username: "cryptoking", UserEmail: "bob@example.com"},
	}

	assert.Len(t, FilterAccounts(accounts, "fit"), 1)
	assert.Len(t, FilterAccounts(accounts, "bob@"), 1)
	assert.Len(t, FilterAccounts(accounts, "nomatch"), 0)

	once := FilterAccounts(accounts, "example")
	twice := FilterAccounts(once, "example")
	assert.Equal(t, once, twice)
}
