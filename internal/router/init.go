package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dwisatya/go-auth-service/config"
	"github.com/dwisatya/go-auth-service/internal/application"
	pginfra "github.com/dwisatya/go-auth-service/internal/infrastructure/postgres"
	handlers "github.com/dwisatya/go-auth-service/internal/interface/http"
	"github.com/dwisatya/go-auth-service/internal/router/modules"
	"github.com/dwisatya/go-auth-service/pkg/helpers"
)

// Deps carries the explicitly constructed infrastructure the modules need.
// Everything is passed in; no package-level singletons.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Mail   application.EmailPublisher
}

// InitModules wires repositories, services, and handlers and registers every
// feature module with the registry.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.Pool)
	svc := application.NewService(
		users,
		d.JWT,
		d.Mail,
		d.Logger,
		d.Cfg.OTPTTL,
		d.Cfg.AppName,
		d.Cfg.MailSendEnabled,
	)
	cookies := helpers.NewCookieManager(d.Cfg.CookieDomain, d.Cfg.CookieSecure, d.Cfg.IsProduction())

	authHandler := handlers.NewAuthHandler(svc, d.Logger, cookies)
	userHandler := handlers.NewUserHandler(svc, d.Logger)

	r.Add(modules.NewAuthModule(authHandler, users, d.JWT, d.Redis))
	r.Add(modules.NewUserModule(userHandler, users, d.JWT, d.Redis))

	r.Engine.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
