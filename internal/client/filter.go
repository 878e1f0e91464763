package client

import (
	"strings"

	"warmup/internal/models"
)

// List filtering for the admin dashboard: pure functions of
// (list, term), case-insensitive substring match.

func FilterOrders(orders []models.Order, term string) []models.Order {
	if term == "" {
		return orders
	}
	term = strings.ToLower(term)

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.UserEmail), term) ||
			strings.Contains(strings.ToLower(o.Plan), term) {
			out = append(out, o)
		}
	}
	return out
}

func FilterAccounts(accounts []models.Account, term string) []models.Account {
	if term == "" {
		return accounts
	}
	term = strings.ToLower(term)

	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		if strings.Contains(strings.ToLower(a.Username), term) ||
			strings.Contains(strings.ToLower(a.UserEmail), term) {
			out = append(out, a)
		}
	}
	return out
}
