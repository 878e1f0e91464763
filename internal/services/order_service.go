package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"warmup/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type OrderService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewOrderService(db *sql.DB, logger zerolog.Logger) *OrderService {
	return &OrderService{
		db:     db,
		logger: logger,
	}
}

func (s *OrderService) ListByUser(userID int) ([]models.Order, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, plan, amount, status, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error listing orders")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows, false)
}

// ListAll returns every order with the owner's email joined on, for
// the admin dashboard.
func (s *OrderService) ListAll() ([]models.Order, error) {
	rows, err := s.db.Query(
		`SELECT o.id, o.user_id, u.email, o.plan, o.amount, o.status, o.created_at
		 FROM orders o JOIN users u ON u.id = o.user_id
		 ORDER BY o.created_at DESC`,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing all orders")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows, true)
}

func scanOrders(rows *sql.Rows, withEmail bool) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var err error
		if withEmail {
			err = rows.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.Plan, &o.Amount, &o.Status, &o.CreatedAt)
		} else {
			err = rows.Scan(&o.ID, &o.UserID, &o.Plan, &o.Amount, &o.Status, &o.CreatedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// CreatePending records an order awaiting payment, keyed by the
// checkout session reference the payment webhook will report back.
func (s *OrderService) CreatePending(userID int, plan, checkoutRef string) (*models.Order, error) {
	amount, ok := models.PlanAmounts[plan]
	if !ok {
		return nil, errors.New("Invalid plan")
	}

	result, err := s.db.Exec(
		"INSERT INTO orders (user_id, checkout_ref, plan, amount, status) VALUES (?, ?, ?, ?, ?)",
		userID, checkoutRef, plan, amount, models.OrderStatusPending,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order ID: %w", err)
	}

	s.logger.Info().Int64("order_id", orderID).Str("plan", plan).Msg("Order created")
	return s.GetByID(int(orderID))
}

// CreateManual records an already-paid order placed by an admin
// outside the payment processor.
func (s *OrderService) CreateManual(userID int, plan, paymentMethod string) (*models.Order, error) {
	amount, ok := models.PlanAmounts[plan]
	if !ok {
		return nil, errors.New("Invalid plan")
	}
	if paymentMethod == "" {
		paymentMethod = "crypto"
	}

	ref := fmt.Sprintf("manual_%s_%s", paymentMethod, strings.ReplaceAll(uuid.NewString(), "-", "")[:16])

	result, err := s.db.Exec(
		"INSERT INTO orders (user_id, checkout_ref, plan, amount, status) VALUES (?, ?, ?, ?, ?)",
		userID, ref, plan, amount, models.OrderStatusPaid,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating manual order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order ID: %w", err)
	}

	s.logger.Info().Int64("order_id", orderID).Int("user_id", userID).Str("plan", plan).Msg("Manual order created")
	return s.GetByID(int(orderID))
}

func (s *OrderService) GetByID(orderID int) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRow(
		"SELECT id, user_id, plan, amount, status, created_at FROM orders WHERE id = ?",
		orderID,
	).Scan(&o.ID, &o.UserID, &o.Plan, &o.Amount, &o.Status, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.New("Order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &o, nil
}

func (s *OrderService) UpdateStatus(orderID int, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, errors.New("Invalid status")
	}

	result, err := s.db.Exec("UPDATE orders SET status = ? WHERE id = ?", status, orderID)
	if err != nil {
		s.logger.Error().Err(err).Int("order_id", orderID).Msg("Error updating order status")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		if _, err := s.GetByID(orderID); err != nil {
			return nil, errors.New("Order not found")
		}
	}

	s.logger.Info().Int("order_id", orderID).Str("status", status).Msg("Order status updated")
	return s.GetByID(orderID)
}

// MarkPaid transitions the order matching a checkout reference to
// paid, recording the processor's payment reference.
func (s *OrderService) MarkPaid(checkoutRef, paymentRef string) error {
	result, err := s.db.Exec(
		"UPDATE orders SET status = ?, payment_ref = ? WHERE checkout_ref = ?",
		models.OrderStatusPaid, paymentRef, checkoutRef,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("checkout_ref", checkoutRef).Msg("Error marking order paid")
		return fmt.Errorf("failed to update order: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		s.logger.Warn().Str("checkout_ref", checkoutRef).Msg("Webhook for unknown checkout session")
		return nil
	}

	s.logger.Info().Str("checkout_ref", checkoutRef).Msg("Payment successful")
	return nil
}

// HasPaidOrder reports whether the user holds at least one paid
// order; self-serve account registration is gated on this.
func (s *OrderService) HasPaidOrder(userID int) (bool, error) {
	var id int
	err := s.db.QueryRow(
		"SELECT id FROM orders WHERE user_id = ? AND status = ? LIMIT 1",
		userID, models.OrderStatusPaid,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return true, nil
}
