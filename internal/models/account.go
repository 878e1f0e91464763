package models

import "time"

// Account is an Instagram account enrolled in the warmup pipeline.
// current_day and progress_percentage are computed by the warming
// automation; clients only read them.
type Account struct {
	ID                 int        `json:"id"`
	UserID             int        `json:"user_id"`
	UserEmail          string     `json:"user_email,omitempty"`
	Username           string     `json:"username"`
	Niche              string     `json:"niche"`
	Status             string     `json:"status"`
	CurrentDay         int        `json:"current_day"`
	ProgressPercentage int        `json:"progress_percentage"`
	ReelsViewed        int        `json:"reels_viewed"`
	AccountsFollowed   int        `json:"accounts_followed"`
	CommentsLeft       int        `json:"comments_left"`
	ProxyID            string     `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
}

const (
	AccountStatusPending   = "pending"
	AccountStatusWarming   = "warming"
	AccountStatusCompleted = "completed"
	AccountStatusPaused    = "paused"
)

func ValidAccountStatus(status string) bool {
	switch status {
	case AccountStatusPending, AccountStatusWarming, AccountStatusCompleted, AccountStatusPaused:
		return true
	}
	return false
}

type CreateAccountRequest struct {
	UserID   int    `json:"user_id,omitempty"`
	Username string `json:"username"`
	Niche    string `json:"niche"`
	Status   string `json:"status,omitempty"`
}

// AccountUpdate carries the fields an admin may patch. Pointers
// distinguish "absent" from zero values.
type AccountUpdate struct {
	Status             *string `json:"status,omitempty"`
	CurrentDay         *int    `json:"current_day,omitempty"`
	ProgressPercentage *int    `json:"progress_percentage,omitempty"`
	ProxyID            *string `json:"proxy_id,omitempty"`
}

type AdminStats struct {
	TotalUsers        int `json:"total_users"`
	TotalOrders       int `json:"total_orders"`
	PaidOrders        int `json:"paid_orders"`
	TotalRevenue      int `json:"total_revenue"`
	ActiveAccounts    int `json:"active_accounts"`
	CompletedAccounts int `json:"completed_accounts"`
}
