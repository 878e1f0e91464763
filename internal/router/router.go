package router

import (
	"database/sql"
	"net/http"
	"os"

	"warmup/internal/config"
	"warmup/internal/handlers"
	"warmup/internal/middleware"
	"warmup/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(db *sql.DB, cfg config.Config, logger zerolog.Logger) *mux.Router {
	provider := services.NewStripeProvider(cfg, logger)

	authHandler := handlers.NewAuthHandler(db, logger)
	orderHandler := handlers.NewOrderHandler(db, logger)
	accountHandler := handlers.NewAccountHandler(db, logger)
	adminHandler := handlers.NewAdminHandler(db, logger)
	checkoutHandler := handlers.NewCheckoutHandler(db, cfg, provider, logger)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		logger.Warn().Msg("JWT_SECRET not set, using default key")
	}

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	me := auth.PathPrefix("/me").Subrouter()
	me.Use(middleware.Authentication(jwtSecret, logger))
	me.HandleFunc("", authHandler.Me).Methods("GET")

	checkout := api.PathPrefix("/checkout").Subrouter()
	checkout.HandleFunc("/create-guest", checkoutHandler.CreateGuest).Methods("POST")
	protectedCheckout := checkout.PathPrefix("/create").Subrouter()
	protectedCheckout.Use(middleware.Authentication(jwtSecret, logger))
	protectedCheckout.HandleFunc("", checkoutHandler.Create).Methods("POST")

	api.HandleFunc("/webhook/stripe", checkoutHandler.Webhook).Methods("POST")

	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.Authentication(jwtSecret, logger))
	orders.HandleFunc("", orderHandler.List).Methods("GET")

	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(middleware.Authentication(jwtSecret, logger))
	accounts.HandleFunc("", accountHandler.List).Methods("GET")
	accounts.HandleFunc("", accountHandler.Create).Methods("POST")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(jwtSecret, logger))
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/create-admin", adminHandler.CreateAdmin).Methods("POST")
	admin.HandleFunc("/users/{id}", adminHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/orders", adminHandler.ListOrders).Methods("GET")
	admin.HandleFunc("/orders/manual", adminHandler.CreateManualOrder).Methods("POST")
	admin.HandleFunc("/orders/{id}", adminHandler.UpdateOrder).Methods("PATCH")
	admin.HandleFunc("/accounts", adminHandler.ListAccounts).Methods("GET")
	admin.HandleFunc("/accounts", adminHandler.CreateAccount).Methods("POST")
	admin.HandleFunc("/accounts/{id}", adminHandler.UpdateAccount).Methods("PATCH")
	admin.HandleFunc("/accounts/{id}", adminHandler.DeleteAccount).Methods("DELETE")
	admin.HandleFunc("/change-password", adminHandler.ChangePassword).Methods("POST")
	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	homeHandler, err := handlers.NewHomeHandler("web/templates", logger)
	if err != nil {
		logger.Error().Err(err).Msg("Landing page templates unavailable")
	} else {
		r.HandleFunc("/", homeHandler.Index).Methods("GET")
	}

	return r
}
