package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"warmup/internal/config"
	"warmup/internal/middleware"
	"warmup/internal/models"
	"warmup/internal/services"

	"github.com/rs/zerolog"
)

type CheckoutHandler struct {
	provider     services.CheckoutProvider
	userService  *services.UserService
	orderService *services.OrderService
	frontendURL  string
	logger       zerolog.Logger
}

func NewCheckoutHandler(db *sql.DB, cfg config.Config, provider services.CheckoutProvider, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		provider:     provider,
		userService:  services.NewUserService(db, logger),
		orderService: services.NewOrderService(db, logger),
		frontendURL:  cfg.FrontendURL,
		logger:       logger,
	}
}

// Create begins a hosted checkout for the authenticated caller and
// records a pending order keyed by the session.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidPlan(req.Plan) {
		respondWithError(w, http.StatusBadRequest, "Invalid plan")
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	h.startCheckout(w, user, req.Plan)
}

// CreateGuest begins a checkout for an unauthenticated visitor,
// creating the user with a temporary password when absent.
func (h *CheckoutHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || !models.ValidPlan(req.Plan) {
		respondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	existing, err := h.userService.FindByEmail(req.Email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if existing == nil {
		existing, err = h.userService.Register(&models.RegisterRequest{
			Email:    req.Email,
			Password: tempPassword(),
		})
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	h.startCheckout(w, existing, req.Plan)
}

func (h *CheckoutHandler) startCheckout(w http.ResponseWriter, user *models.User, plan string) {
	successURL := fmt.Sprintf("%s/success?session_id={CHECKOUT_SESSION_ID}", h.frontendURL)
	cancelURL := fmt.Sprintf("%s/signup?cancelled=true", h.frontendURL)

	session, err := h.provider.CreateSession(plan, user.Email, successURL, cancelURL)
	if err != nil {
		h.logger.Error().Err(err).Str("plan", plan).Msg("Checkout error")
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := h.orderService.CreatePending(user.ID, plan, session.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, models.CheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
	})
}

// Webhook handles payment processor notifications. A verified
// completed checkout marks the matching order paid.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	event, err := h.provider.ParseWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	if event != nil {
		if err := h.orderService.MarkPaid(event.CheckoutRef, event.PaymentRef); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to record payment")
			return
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func tempPassword() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
