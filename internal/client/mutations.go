package client

import (
	"context"
	"fmt"
	"net/http"

	"warmup/internal/models"
)

// Dispatcher performs writes. Every successful mutation is followed
// by exactly one snapshot reload; the reloaded snapshot, not the
// mutation response, is authoritative.
type Dispatcher struct {
	client *Client
	loader *Loader
}

func NewDispatcher(client *Client, loader *Loader) *Dispatcher {
	return &Dispatcher{client: client, loader: loader}
}

func (d *Dispatcher) reload(ctx context.Context, role Role) (*Snapshot, error) {
	return d.loader.Load(ctx, role)
}

// AddAccount is the self-serve path: the caller must hold a paid
// order (enforced server-side as well).
func (d *Dispatcher) AddAccount(ctx context.Context, username, niche string) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodPost, "/api/accounts",
		models.CreateAccountRequest{Username: username, Niche: niche}, nil, true, "Failed to add account")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleClient)
}

func (d *Dispatcher) UpdateOrderStatus(ctx context.Context, orderID int, status string) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d", orderID),
		map[string]string{"status": status}, nil, true, "Failed to update order")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}

func (d *Dispatcher) AdminAddAccount(ctx context.Context, req *models.CreateAccountRequest) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodPost, "/api/admin/accounts", req, nil, true, "Failed to add account")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}

func (d *Dispatcher) UpdateAccount(ctx context.Context, accountID int, upd *models.AccountUpdate) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/accounts/%d", accountID),
		upd, nil, true, "Failed to update account")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}

func (d *Dispatcher) DeleteAccount(ctx context.Context, accountID int) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/accounts/%d", accountID),
		nil, nil, true, "Failed to delete account")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}

// DeleteUser cascades removal of the user's orders and accounts
// server-side.
func (d *Dispatcher) DeleteUser(ctx context.Context, userID int) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID),
		nil, nil, true, "Failed to delete user")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}

func (d *Dispatcher) CreateManualOrder(ctx context.Context, req *models.ManualOrderRequest) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodPost, "/api/admin/orders/manual", req, nil, true, "Failed to create order")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}

func (d *Dispatcher) ChangeAdminPassword(ctx context.Context, newPassword string) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodPost, "/api/admin/change-password",
		map[string]string{"new_password": newPassword}, nil, true, "Failed to change password")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}

func (d *Dispatcher) CreateAdmin(ctx context.Context, email, password string) (*Snapshot, error) {
	err := d.client.do(ctx, http.MethodPost, "/api/admin/users/create-admin",
		models.RegisterRequest{Email: email, Password: password}, nil, true, "Failed to create admin")
	if err != nil {
		return nil, err
	}
	return d.reload(ctx, RoleAdmin)
}
