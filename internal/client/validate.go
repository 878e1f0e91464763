package client

import (
	"errors"
	"strings"
)

// Form validators: pure, synchronous precondition checks evaluated
// before a mutation is dispatched. A non-nil error blocks submission;
// no request is sent.

const passwordMinLength = 8

func ValidatePassword(password, confirm string) error {
	if len(password) < passwordMinLength {
		return errors.New("Password must be at least 8 characters")
	}
	if password != confirm {
		return errors.New("Passwords do not match")
	}
	return nil
}

func ValidateRegistration(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("Email is required")
	}
	if password == "" {
		return errors.New("Password is required")
	}
	return nil
}

func ValidateAccountForm(username, niche string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("Username is required")
	}
	if strings.TrimSpace(niche) == "" {
		return errors.New("Niche is required")
	}
	return nil
}

func ValidateAdminAccountForm(userID int, username, niche string) error {
	if userID <= 0 {
		return errors.New("Select a user")
	}
	return ValidateAccountForm(username, niche)
}

// ValidateManualOrderForm enforces the mutually exclusive existing
// user vs. new user selection: exactly one side must be filled in,
// with its complementary fields.
func ValidateManualOrderForm(userID int, createNewUser bool, email, password string) error {
	if createNewUser {
		if userID > 0 {
			return errors.New("Choose either an existing user or a new user, not both")
		}
		if strings.TrimSpace(email) == "" || password == "" {
			return errors.New("Email and password required for new user")
		}
		return nil
	}
	if userID <= 0 {
		return errors.New("Select a user")
	}
	if email != "" || password != "" {
		return errors.New("Choose either an existing user or a new user, not both")
	}
	return nil
}
