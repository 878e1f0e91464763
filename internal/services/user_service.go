package services

import (
	"database/sql"
	"errors"
	"fmt"

	"warmup/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserService(db *sql.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	return s.createUser(req.Email, req.Password, string(models.RoleClient))
}

// CreateAdmin registers a new user with the admin role.
func (s *UserService) CreateAdmin(email, password string) (*models.User, error) {
	return s.createUser(email, password, string(models.RoleAdmin))
}

func (s *UserService) createUser(email, password, role string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("Email and password required")
	}

	var existingID int
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&existingID)
	if err == nil {
		return nil, errors.New("User already exists")
	} else if err != sql.ErrNoRows {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO users (email, password_hash, role) VALUES (?, ?, ?)",
		email, string(hashedPassword), role,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	user, err := s.GetUserByID(int(userID))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Str("role", role).Msg("User created")
	return user, nil
}

func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("Email and password required")
	}

	var user models.User
	err := s.db.QueryRow(
		"SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?",
		req.Email,
	).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("Invalid credentials")
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, errors.New("Invalid credentials")
	}

	user.PasswordHash = ""
	user.IsAdmin = user.Role == string(models.RoleAdmin)
	return &user, nil
}

func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		"SELECT id, email, role, created_at FROM users WHERE id = ?",
		userID,
	).Scan(
		&user.ID, &user.Email, &user.Role, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("User not found")
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error fetching user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.IsAdmin = user.Role == string(models.RoleAdmin)
	return &user, nil
}

// FindByEmail returns nil, nil when no user matches.
func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		"SELECT id, email, role, created_at FROM users WHERE email = ?",
		email,
	).Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching user by email")
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.IsAdmin = user.Role == string(models.RoleAdmin)
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, email, role, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing users")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		user.IsAdmin = user.Role == string(models.RoleAdmin)
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes a client user along with their orders and
// accounts. Admin rows are not deletable.
func (s *UserService) DeleteUser(userID int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return errors.New("Cannot delete admin users")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM accounts WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM orders WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete orders: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM users WHERE id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	s.logger.Info().Int("user_id", userID).Msg("User deleted")
	return nil
}

func (s *UserService) ChangePassword(userID int, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("Password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashed), userID)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error updating password")
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info().Int("user_id", userID).Msg("Password changed")
	return nil
}
