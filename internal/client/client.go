package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"warmup/internal/models"

	"github.com/rs/zerolog"
)

// Error strings surfaced to the user, matching the dashboards.
const (
	msgNetworkError = "Network error. Please try again."
	msgLoginFailed  = "Login failed"
	msgAccessDenied = "Access denied. Admin credentials required."
)

// ErrUnauthorized marks authentication-class failures: the session is
// no longer valid and has been cleared by the caller's policy.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is an application-level failure: a non-2xx response whose
// body carried an "error" field (or the per-operation fallback).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the warmup REST API. The bearer token is read from
// the Session at request time; there are no retries anywhere.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
	logger  zerolog.Logger
}

func New(baseURL string, session *Session, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		http:    http.DefaultClient,
		logger:  logger,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

// do issues one request. A nil out discards the response body. The
// fallback message is used when a non-2xx body has no "error" field.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool, fallback string) error {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.session.Token()
		if err != nil {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Request failed")
		return errors.New(msgNetworkError)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: parseErrorBody(resp, fallback)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response from %s: %w", path, err)
	}
	return nil
}

func parseErrorBody(resp *http.Response, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fallback
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		models.RegisterRequest{Email: email, Password: password}, &resp, false, "Failed to create account")
	if err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: email, Password: password}, &resp, false, msgLoginFailed)
	if err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// AdminLogin authenticates and then verifies the identity is an
// admin. A non-admin result discards the token: nothing is persisted.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*models.User, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: email, Password: password}, &resp, false, msgLoginFailed)
	if err != nil {
		return nil, err
	}

	// Identity check before the token is persisted.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+resp.Token)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.New(msgNetworkError)
	}
	defer httpResp.Body.Close()

	var user models.User
	if httpResp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: httpResp.StatusCode, Message: parseErrorBody(httpResp, msgLoginFailed)}
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("malformed response from /api/auth/me: %w", err)
	}

	if !user.IsAdmin {
		return nil, errors.New(msgAccessDenied)
	}

	if err := c.session.Set(resp.Token); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user, true, "Failed to load profile"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders, true, "Failed to load orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &accounts, true, "Failed to load accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users, true, "Failed to load users"); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", nil, &orders, true, "Failed to load orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) AllAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.do(ctx, http.MethodGet, "/api/admin/accounts", nil, &accounts, true, "Failed to load accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) Stats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats, true, "Failed to load stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateCheckout starts a hosted checkout and returns the redirect
// URL.
func (c *Client) CreateCheckout(ctx context.Context, plan string) (*models.CheckoutResponse, error) {
	var resp models.CheckoutResponse
	err := c.do(ctx, http.MethodPost, "/api/checkout/create",
		models.CheckoutRequest{Plan: plan}, &resp, true, "Failed to create checkout session")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
