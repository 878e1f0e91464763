package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"warmup/internal/middleware"
	"warmup/internal/models"
	"warmup/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// AdminHandler serves the admin dashboard API. Routes are mounted
// behind the AdminOnly middleware, so role checks are not repeated
// here.
type AdminHandler struct {
	userService    *services.UserService
	orderService   *services.OrderService
	accountService *services.AccountService
	logger         zerolog.Logger
}

func NewAdminHandler(db *sql.DB, logger zerolog.Logger) *AdminHandler {
	orderService := services.NewOrderService(db, logger)
	return &AdminHandler{
		userService:    services.NewUserService(db, logger),
		orderService:   orderService,
		accountService: services.NewAccountService(db, orderService, logger),
		logger:         logger,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		switch err.Error() {
		case "User not found":
			respondWithError(w, http.StatusNotFound, err.Error())
		case "Cannot delete admin users":
			respondWithError(w, http.StatusForbidden, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.CreateAdmin(req.Email, req.Password)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(userID, req.NewPassword); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		if err.Error() == "Order not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
		} else {
			respondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

// CreateManualOrder records a paid order outside the payment
// processor, for an existing user or a freshly created one.
func (h *AdminHandler) CreateManualOrder(w http.ResponseWriter, r *http.Request) {
	var req models.ManualOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := req.UserID
	if req.CreateNewUser {
		if req.Email == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Email and password required for new user")
			return
		}
		user, err := h.userService.Register(&models.RegisterRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		userID = user.ID
	}

	if userID == 0 {
		respondWithError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	if !models.ValidPlan(req.Plan) {
		respondWithError(w, http.StatusBadRequest, "Invalid plan")
		return
	}

	order, err := h.orderService.CreateManual(userID, req.Plan, req.PaymentMethod)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.ListAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load accounts")
		return
	}
	respondWithJSON(w, http.StatusOK, accounts)
}

func (h *AdminHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accountService.CreateForUser(&req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, account)
}

func (h *AdminHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	var upd models.AccountUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accountService.Update(accountID, &upd)
	if err != nil {
		if err.Error() == "Account not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
		} else {
			respondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, account)
}

func (h *AdminHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid account ID")
		return
	}

	if err := h.accountService.Delete(accountID); err != nil {
		if err.Error() == "Account not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.accountService.Stats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
