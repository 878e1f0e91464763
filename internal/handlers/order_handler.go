package handlers

import (
	"database/sql"
	"net/http"

	"warmup/internal/middleware"
	"warmup/internal/services"

	"github.com/rs/zerolog"
)

type OrderHandler struct {
	orderService *services.OrderService
	logger       zerolog.Logger
}

func NewOrderHandler(db *sql.DB, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: services.NewOrderService(db, logger),
		logger:       logger,
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	orders, err := h.orderService.ListByUser(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}
