package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	repo "github.com/dwisatya/go-auth-service/internal/domain/repository"
	handlers "github.com/dwisatya/go-auth-service/internal/interface/http"
	"github.com/dwisatya/go-auth-service/internal/interface/middleware"
	"github.com/dwisatya/go-auth-service/pkg/helpers"
)

// AuthModule wires the auth endpoints.
// Public: register, login, forgot-password, reset-password.
// Session-protected: logout, send-verify-otp, verify-account.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP())
	forgotLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath())
	resetLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/auth/reset-password", resetLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/auth/logout", m.Handler.Logout)
		auth.GET("/auth/send-verify-otp", m.Handler.SendVerifyOTP)
		auth.POST("/auth/verify-account", m.Handler.VerifyAccount)
	}
}
