package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerifyOTP(t *testing.T) {
	data := map[string]any{
		"Name":    "Alice",
		"Email":   "a@x.com",
		"Code":    "123456",
		"AppName": "TestApp",
		"Minutes": 15,
	}

	subject, text, html, err := Render("verify_otp", data)
	require.NoError(t, err)
	assert.Equal(t, "Account Verification OTP", subject)
	assert.Contains(t, text, "123456")
	assert.Contains(t, text, "15 minutes")
	assert.Contains(t, html, "123456")
}

func TestRenderResetOTP(t *testing.T) {
	data := map[string]any{
		"Name":    "Alice",
		"Email":   "a@x.com",
		"Code":    "654321",
		"AppName": "TestApp",
		"Minutes": 15,
	}

	subject, text, html, err := Render("reset_otp", data)
	require.NoError(t, err)
	assert.Equal(t, "Password Reset OTP", subject)
	assert.Contains(t, text, "654321")
	assert.Contains(t, html, "654321")
}

func TestRenderWelcome(t *testing.T) {
	data := map[string]any{
		"Name":    "Alice",
		"Email":   "a@x.com",
		"AppName": "TestApp",
	}

	subject, text, html, err := Render("welcome", data)
	require.NoError(t, err)
	assert.Contains(t, subject, "TestApp")
	assert.Contains(t, text, "a@x.com")
	assert.Contains(t, html, "a@x.com")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("does_not_exist", nil)
	assert.Error(t, err)
}
