package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never the plain text.
// OTP fields are set while a code is outstanding and cleared on success.
type User struct {
	ID                 string
	Name               string
	Email              string
	Password           string
	IsVerified         bool
	VerifyOTP          string
	VerifyOTPExpiresAt *time.Time
	ResetOTP           string
	ResetOTPExpiresAt  *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ClearVerifyOTP removes an outstanding verification code.
func (u *User) ClearVerifyOTP() {
	u.VerifyOTP = ""
	u.VerifyOTPExpiresAt = nil
}

// ClearResetOTP removes an outstanding password reset code.
func (u *User) ClearResetOTP() {
	u.ResetOTP = ""
	u.ResetOTPExpiresAt = nil
}
