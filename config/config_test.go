package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "go-auth-service", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.OTPTTL)
	assert.True(t, cfg.MailSendEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("MAIL_SEND_ENABLED", "false")
	t.Setenv("DB_MAX_CONNS", "20")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, int32(20), cfg.DBMaxConns)
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "auth")

	cfg := Load()
	assert.Equal(t, "postgres://app:secret@db:5433/auth?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
