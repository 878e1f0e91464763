package client

import (
	"context"
	"errors"

	"warmup/internal/models"
)

// GuardState is the per-page access decision.
type GuardState int

const (
	// Checking is the initial state while the identity check runs.
	Checking GuardState = iota
	// Unauthenticated: no token held; redirect to the login route
	// before any data fetch.
	Unauthenticated
	// Forbidden: a token is held but the role requirement failed;
	// redirect home.
	Forbidden
	// Authorized: proceed to the data loader.
	Authorized
)

func (s GuardState) String() string {
	switch s {
	case Checking:
		return "checking"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authorized:
		return "authorized"
	}
	return "unknown"
}

// Guard decides whether a protected view may proceed. There is no
// mid-session expiry re-check; an expired token is only discovered
// when a later request fails.
type Guard struct {
	client *Client
}

func NewGuard(client *Client) *Guard {
	return &Guard{client: client}
}

// Check runs the state machine for one page load. Without a token it
// returns Unauthenticated immediately, before any network call. With
// one, the identity endpoint decides Authorized vs Forbidden.
func (g *Guard) Check(ctx context.Context, role Role) (GuardState, *models.User, error) {
	if !g.client.Session().Active() {
		return Unauthenticated, nil, nil
	}

	user, err := g.client.Me(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			_ = g.client.Session().Clear()
			return Unauthenticated, nil, nil
		}
		return Checking, nil, err
	}

	if role == RoleAdmin && !user.IsAdmin {
		return Forbidden, user, nil
	}
	return Authorized, user, nil
}
