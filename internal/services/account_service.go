package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"warmup/internal/models"

	"github.com/rs/zerolog"
)

type AccountService struct {
	db     *sql.DB
	orders *OrderService
	logger zerolog.Logger
}

func NewAccountService(db *sql.DB, orders *OrderService, logger zerolog.Logger) *AccountService {
	return &AccountService{
		db:     db,
		orders: orders,
		logger: logger,
	}
}

const accountColumns = `id, user_id, username, niche, status, current_day, progress_percentage,
	reels_viewed, accounts_followed, comments_left, created_at, started_at, completed_at`

func (s *AccountService) ListByUser(userID int) ([]models.Account, error) {
	rows, err := s.db.Query(
		"SELECT "+accountColumns+" FROM accounts WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error listing accounts")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows, false)
}

func (s *AccountService) ListAll() ([]models.Account, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.user_id, u.email, a.username, a.niche, a.status, a.current_day,
			a.progress_percentage, a.reels_viewed, a.accounts_followed, a.comments_left,
			a.created_at, a.started_at, a.completed_at
		 FROM accounts a JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC`,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing all accounts")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows, true)
}

func scanAccounts(rows *sql.Rows, withEmail bool) ([]models.Account, error) {
	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		var err error
		if withEmail {
			err = rows.Scan(&a.ID, &a.UserID, &a.UserEmail, &a.Username, &a.Niche, &a.Status,
				&a.CurrentDay, &a.ProgressPercentage, &a.ReelsViewed, &a.AccountsFollowed,
				&a.CommentsLeft, &a.CreatedAt, &a.StartedAt, &a.CompletedAt)
		} else {
			err = rows.Scan(&a.ID, &a.UserID, &a.Username, &a.Niche, &a.Status,
				&a.CurrentDay, &a.ProgressPercentage, &a.ReelsViewed, &a.AccountsFollowed,
				&a.CommentsLeft, &a.CreatedAt, &a.StartedAt, &a.CompletedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// CreateSelfServe registers an Instagram account for the caller.
// Requires a paid order; strips a leading "@"; rejects duplicates.
func (s *AccountService) CreateSelfServe(userID int, username, niche string) (*models.Account, error) {
	paid, err := s.orders.HasPaidOrder(userID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, errors.New("You need a paid order to add Instagram accounts")
	}

	username = strings.TrimSpace(strings.ReplaceAll(username, "@", ""))
	if username == "" || niche == "" {
		return nil, errors.New("Username and niche required")
	}

	var existingID int
	err = s.db.QueryRow(
		"SELECT id FROM accounts WHERE user_id = ? AND username = ?",
		userID, username,
	).Scan(&existingID)
	if err == nil {
		return nil, errors.New("This Instagram account is already added")
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.insert(userID, username, niche, models.AccountStatusPending)
}

// CreateForUser registers an account on behalf of any user (admin).
func (s *AccountService) CreateForUser(req *models.CreateAccountRequest) (*models.Account, error) {
	if req.UserID == 0 || req.Username == "" {
		return nil, errors.New("User and username required")
	}

	niche := req.Niche
	if niche == "" {
		niche = "general"
	}
	status := req.Status
	if status == "" {
		status = models.AccountStatusPending
	}
	if !models.ValidAccountStatus(status) {
		return nil, errors.New("Invalid status")
	}

	username := strings.TrimSpace(strings.ReplaceAll(req.Username, "@", ""))
	return s.insert(req.UserID, username, niche, status)
}

func (s *AccountService) insert(userID int, username, niche, status string) (*models.Account, error) {
	result, err := s.db.Exec(
		"INSERT INTO accounts (user_id, username, niche, status) VALUES (?, ?, ?, ?)",
		userID, username, niche, status,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating account")
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	accountID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get account ID: %w", err)
	}

	s.logger.Info().Int64("account_id", accountID).Str("username", username).Msg("Account created")
	return s.GetByID(int(accountID))
}

func (s *AccountService) GetByID(accountID int) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRow(
		"SELECT "+accountColumns+" FROM accounts WHERE id = ?",
		accountID,
	).Scan(&a.ID, &a.UserID, &a.Username, &a.Niche, &a.Status, &a.CurrentDay,
		&a.ProgressPercentage, &a.ReelsViewed, &a.AccountsFollowed, &a.CommentsLeft,
		&a.CreatedAt, &a.StartedAt, &a.CompletedAt)

	if err == sql.ErrNoRows {
		return nil, errors.New("Account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &a, nil
}

// Update merges the provided fields into the account row.
func (s *AccountService) Update(accountID int, upd *models.AccountUpdate) (*models.Account, error) {
	if _, err := s.GetByID(accountID); err != nil {
		return nil, err
	}

	sets := []string{}
	args := []interface{}{}

	if upd.Status != nil {
		if !models.ValidAccountStatus(*upd.Status) {
			return nil, errors.New("Invalid status")
		}
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.CurrentDay != nil {
		sets = append(sets, "current_day = ?")
		args = append(args, *upd.CurrentDay)
	}
	if upd.ProgressPercentage != nil {
		sets = append(sets, "progress_percentage = ?")
		args = append(args, *upd.ProgressPercentage)
	}
	if upd.ProxyID != nil {
		sets = append(sets, "proxy_id = ?")
		args = append(args, *upd.ProxyID)
	}

	if len(sets) > 0 {
		args = append(args, accountID)
		_, err := s.db.Exec("UPDATE accounts SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			s.logger.Error().Err(err).Int("account_id", accountID).Msg("Error updating account")
			return nil, fmt.Errorf("failed to update account: %w", err)
		}
	}

	return s.GetByID(accountID)
}

func (s *AccountService) Delete(accountID int) error {
	if _, err := s.GetByID(accountID); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM accounts WHERE id = ?", accountID)
	if err != nil {
		s.logger.Error().Err(err).Int("account_id", accountID).Msg("Error deleting account")
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info().Int("account_id", accountID).Msg("Account deleted")
	return nil
}

// Stats aggregates the dashboard counters. Revenue is integer cents.
func (s *AccountService) Stats() (*models.AdminStats, error) {
	stats := &models.AdminStats{}

	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM users WHERE role = 'client'", &stats.TotalUsers},
		{"SELECT COUNT(*) FROM orders", &stats.TotalOrders},
		{"SELECT COUNT(*) FROM orders WHERE status = 'paid'", &stats.PaidOrders},
		{"SELECT COALESCE(SUM(amount), 0) FROM orders WHERE status = 'paid'", &stats.TotalRevenue},
		{"SELECT COUNT(*) FROM accounts WHERE status = 'warming'", &stats.ActiveAccounts},
		{"SELECT COUNT(*) FROM accounts WHERE status = 'completed'", &stats.CompletedAccounts},
	}

	for _, q := range queries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}
	return stats, nil
}
