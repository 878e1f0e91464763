package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough", "longenough"))
	assert.EqualError(t, ValidatePassword("short", "short"), "Password must be at least 8 characters")
	assert.EqualError(t, ValidatePassword("longenough", "different"), "Passwords do not match")
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration("user@example.com", "secret123"))
	assert.Error(t, ValidateRegistration("", "secret123"))
	assert.Error(t, ValidateRegistration("  ", "secret123"))
	assert.Error(t, ValidateRegistration("user@example.com", ""))
}

func TestValidateAccountForm(t *testing.T) {
	assert.NoError(t, ValidateAccountForm("warmme", "fitness"))
	assert.Error(t, ValidateAccountForm("", "fitness"))
	assert.Error(t, ValidateAccountForm("warmme", ""))
}

func TestValidateAdminAccountForm(t *testing.T) {
	assert.NoError(t, ValidateAdminAccountForm(3, "warmme", "fitness"))
	assert.EqualError(t, ValidateAdminAccountForm(0, "warmme", "fitness"), "Select a user")
}

func TestValidateManualOrderForm(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		assert.NoError(t, ValidateManualOrderForm(5, false, "", ""))
		assert.EqualError(t, ValidateManualOrderForm(0, false, "", ""), "Select a user")
	})

	t.Run("new user requires complementary fields", func(t *testing.T) {
		assert.NoError(t, ValidateManualOrderForm(0, true, "new@example.com", "secret123"))
		assert.Error(t, ValidateManualOrderForm(0, true, "", "secret123"))
		assert.Error(t, ValidateManualOrderForm(0, true, "new@example.com", ""))
	})

	t.Run("selections are mutually exclusive", func(t *testing.T) {
		assert.Error(t, ValidateManualOrderForm(5, true, "new@example.com", "secret123"))
		assert.Error(t, ValidateManualOrderForm(5, false, "new@example.com", ""))
	})
}
