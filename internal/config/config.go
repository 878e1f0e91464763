package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl       string
	Port        string
	FrontendURL string

	AdminEmail    string
	AdminPassword string

	StripeSecretKey     string
	StripeWebhookSecret string
	PriceOneTime        string
	PriceStarter        string
	PriceGrowth         string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, falling back to environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:" + port
	}

	return Config{
		DBUrl:       os.Getenv("DB_URL"),
		Port:        port,
		FrontendURL: frontendURL,

		AdminEmail:    getenvDefault("ADMIN_EMAIL", "admin@warmup.ai"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PriceOneTime:        os.Getenv("PRICE_ONE_TIME"),
		PriceStarter:        os.Getenv("PRICE_STARTER"),
		PriceGrowth:         os.Getenv("PRICE_GROWTH"),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
