package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dwisatya/go-auth-service/internal/application"
	"github.com/dwisatya/go-auth-service/internal/domain/entity"
	"github.com/dwisatya/go-auth-service/internal/interface/middleware"
	"github.com/dwisatya/go-auth-service/pkg/helpers"
	"github.com/dwisatya/go-auth-service/pkg/response"
	"github.com/dwisatya/go-auth-service/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type verifyAccountRequest struct {
	OTP string `json:"otp" binding:"required,otp"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// userView is the client-facing shape of a user record. The password hash is
// never part of it.
func userView(u *entity.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"is_verified": u.IsVerified,
		"created_at":  u.CreatedAt,
		"updated_at":  u.UpdatedAt,
	}
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, sess, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusBadRequest, "account has already been created using this email address", nil)
			return
		}
		h.fail(c, "register", err)
		return
	}

	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusCreated, userView(u), "registration successful, welcome aboard")
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusUnauthorized, "no account found with this email, please register first", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error[any](c, http.StatusUnauthorized, "incorrect password, please try again", nil)
		default:
			h.fail(c, "login", err)
		}
		return
	}

	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, userView(u), "login successful, welcome back")
}

// Logout GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.ClearSession(c)
	response.Success[any](c, http.StatusOK, nil, "logout successful")
}

// SendVerifyOTP GET /api/v1/auth/send-verify-otp
func (h *AuthHandler) SendVerifyOTP(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.SendVerifyOTP(c.Request.Context(), uid); err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyVerified):
			response.Error[any](c, http.StatusBadRequest, "your account is already verified", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found, please login again", nil)
		default:
			h.fail(c, "send verify otp", err)
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "verification otp sent to your registered email address")
}

// VerifyAccount POST /api/v1/auth/verify-account
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	var req verifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "otp is required to verify your account", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.VerifyAccount(c.Request.Context(), uid, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOTPMismatch):
			response.Error[any](c, http.StatusBadRequest, "invalid otp provided, please check and try again", nil)
		case errors.Is(err, application.ErrOTPExpired):
			response.Error[any](c, http.StatusBadRequest, "otp has expired, please request a new one", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found, please login again", nil)
		default:
			h.fail(c, "verify account", err)
		}
		return
	}
	response.Success(c, http.StatusOK, userView(u), "your account has been successfully verified")
}

// ForgotPassword POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "please provide your registered email address", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "no account found with this email address", nil)
			return
		}
		h.fail(c, "forgot password", err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password reset otp sent to your registered email address")
}

// ResetPassword POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "email, otp, and new password are required", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "no account found with the provided email", nil)
		case errors.Is(err, application.ErrOTPMismatch):
			response.Error[any](c, http.StatusBadRequest, "invalid or missing otp, please request a new one", nil)
		case errors.Is(err, application.ErrOTPExpired):
			response.Error[any](c, http.StatusBadRequest, "otp expired, please request a new password reset otp", nil)
		case errors.Is(err, application.ErrSamePassword):
			response.Error[any](c, http.StatusBadRequest, "new password cannot be the same as the current password", nil)
		default:
			h.fail(c, "reset password", err)
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password has been reset successfully, you can now login with your new password")
}

func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("op", op).Error("auth operation failed")
	}
	response.Error[any](c, http.StatusInternalServerError, "something went wrong, please try again later", nil)
}
