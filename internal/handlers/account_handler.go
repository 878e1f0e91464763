package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"warmup/internal/middleware"
	"warmup/internal/models"
	"warmup/internal/services"

	"github.com/rs/zerolog"
)

type AccountHandler struct {
	accountService *services.AccountService
	logger         zerolog.Logger
}

func NewAccountHandler(db *sql.DB, logger zerolog.Logger) *AccountHandler {
	orderService := services.NewOrderService(db, logger)
	return &AccountHandler{
		accountService: services.NewAccountService(db, orderService, logger),
		logger:         logger,
	}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	accounts, err := h.accountService.ListByUser(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load accounts")
		return
	}

	respondWithJSON(w, http.StatusOK, accounts)
}

// Create is the self-serve path: it requires the caller to hold a
// paid order.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accountService.CreateSelfServe(userID, req.Username, req.Niche)
	if err != nil {
		status := http.StatusBadRequest
		if err.Error() == "You need a paid order to add Instagram accounts" {
			status = http.StatusForbidden
		}
		respondWithError(w, status, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, account)
}
