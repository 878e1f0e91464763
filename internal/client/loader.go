package client

import (
	"context"
	"errors"

	"warmup/internal/models"

	"golang.org/x/sync/errgroup"
)

// Role selects which collections a snapshot contains.
type Role int

const (
	RoleClient Role = iota
	RoleAdmin
)

// Snapshot is the in-memory tuple of collections a dashboard renders
// from. It is replaced wholesale, never patched.
type Snapshot struct {
	User     *models.User
	Orders   []models.Order
	Accounts []models.Account
	// Users is populated for RoleAdmin only.
	Users []models.User
}

// HasPaidOrder reports whether the snapshot holds at least one paid
// order; the add-account affordance is shown only when it does.
func (s *Snapshot) HasPaidOrder() bool {
	for _, o := range s.Orders {
		if o.Status == models.OrderStatusPaid {
			return true
		}
	}
	return false
}

// Loader fetches consistent snapshots. All fetches for one snapshot
// run concurrently and resolve all-or-nothing: any failure discards
// the whole load.
type Loader struct {
	client *Client
}

func NewLoader(client *Client) *Loader {
	return &Loader{client: client}
}

// Load issues the role's fetches concurrently. On an
// authentication-class failure the session is cleared and
// ErrUnauthorized returned; any other failure is surfaced as-is. No
// partial snapshot is ever returned.
func (l *Loader) Load(ctx context.Context, role Role) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := l.client.Me(gctx)
		if err != nil {
			return err
		}
		snap.User = user
		return nil
	})

	if role == RoleAdmin {
		g.Go(func() error {
			orders, err := l.client.AllOrders(gctx)
			if err != nil {
				return err
			}
			snap.Orders = orders
			return nil
		})
		g.Go(func() error {
			accounts, err := l.client.AllAccounts(gctx)
			if err != nil {
				return err
			}
			snap.Accounts = accounts
			return nil
		})
		g.Go(func() error {
			users, err := l.client.AllUsers(gctx)
			if err != nil {
				return err
			}
			snap.Users = users
			return nil
		})
	} else {
		g.Go(func() error {
			orders, err := l.client.Orders(gctx)
			if err != nil {
				return err
			}
			snap.Orders = orders
			return nil
		})
		g.Go(func() error {
			accounts, err := l.client.Accounts(gctx)
			if err != nil {
				return err
			}
			snap.Accounts = accounts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			// The token is no longer valid; drop it so the next page
			// load lands on the login route.
			_ = l.client.Session().Clear()
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return snap, nil
}
