package models

import "time"

type Order struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	CheckoutRef string    `json:"-"`
	PaymentRef  string    `json:"-"`
	Plan        string    `json:"plan"`
	// Amount is integer cents on the wire and in storage. Display
	// formatting divides by 100 exactly once, client-side.
	Amount    int       `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusWarming   = "warming"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

const (
	PlanOneTime = "one_time"
	PlanStarter = "starter"
	PlanGrowth  = "growth"
)

// PlanAmounts maps plan to its price in cents.
var PlanAmounts = map[string]int{
	PlanOneTime: 7500,
	PlanStarter: 29900,
	PlanGrowth:  49900,
}

func ValidPlan(plan string) bool {
	_, ok := PlanAmounts[plan]
	return ok
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusWarming, OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}

type CheckoutRequest struct {
	Plan  string `json:"plan"`
	Email string `json:"email,omitempty"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type ManualOrderRequest struct {
	UserID        int    `json:"user_id,omitempty"`
	Plan          string `json:"plan"`
	PaymentMethod string `json:"payment_method,omitempty"`
	CreateNewUser bool   `json:"create_new_user,omitempty"`
	Email         string `json:"email,omitempty"`
	Password      string `json:"password,omitempty"`
}
