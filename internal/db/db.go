package db

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

func InitDB(dbURL string) *sql.DB {
	db, err := sql.Open("mysql", dbURL+"?parseTime=true")
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("Database is not responding:", err)
	}

	log.Println("Connected to database")
	return db
}

func RunMigrations(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(120) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'client',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			checkout_ref VARCHAR(255) UNIQUE,
			payment_ref VARCHAR(255),
			plan VARCHAR(50) NOT NULL,
			amount INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_orders_user_id (user_id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			username VARCHAR(100) NOT NULL,
			niche VARCHAR(50) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			current_day INT NOT NULL DEFAULT 0,
			progress_percentage INT NOT NULL DEFAULT 0,
			reels_viewed INT NOT NULL DEFAULT 0,
			accounts_followed INT NOT NULL DEFAULT 0,
			comments_left INT NOT NULL DEFAULT 0,
			proxy_id VARCHAR(100),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			started_at DATETIME NULL,
			completed_at DATETIME NULL,
			INDEX idx_accounts_user_id (user_id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatal("Migration failed:", err)
		}
	}
	log.Println("Migrations complete")
}

// SeedAdmin creates the initial admin user when none exists.
func SeedAdmin(db *sql.DB, email, password string) error {
	var existingID int
	err := db.QueryRow("SELECT id FROM users WHERE role = 'admin' LIMIT 1").Scan(&existingID)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	if password == "" {
		password = "admin123"
		log.Println("ADMIN_PASSWORD not set, seeding admin with default password; change it immediately")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		"INSERT INTO users (email, password_hash, role) VALUES (?, ?, 'admin')",
		email, string(hashed),
	)
	if err != nil {
		return err
	}

	log.Println("Admin user created:", email)
	return nil
}
