package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwisatya/go-auth-service/internal/domain/entity"
	"github.com/dwisatya/go-auth-service/internal/interface/middleware"
	"github.com/dwisatya/go-auth-service/internal/mocks"
	"github.com/dwisatya/go-auth-service/pkg/helpers"
)

func setupAuthRouter(t *testing.T, repo *mocks.InMemoryUserRepository, jwt *helpers.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.Auth(repo, jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(middleware.CtxUserIDKey)})
	})
	return r
}

func seedUser(t *testing.T, repo *mocks.InMemoryUserRepository) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func doProtected(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestAuthMiddleware(t *testing.T) {
	repo := mocks.NewInMemoryUserRepository()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := setupAuthRouter(t, repo, jwt)
	u := seedUser(t, repo)

	t.Run("missing cookie", func(t *testing.T) {
		w := doProtected(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := doProtected(r, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, message(t, w), "invalid session token")
	})

	t.Run("expired token has a distinct message", func(t *testing.T) {
		expired := helpers.NewJWTManager("test-secret", -time.Minute)
		token, _, err := expired.GenerateSessionToken(u.ID)
		require.NoError(t, err)

		w := doProtected(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, message(t, w), "session expired")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := helpers.NewJWTManager("other-secret", time.Hour)
		token, _, err := other.GenerateSessionToken(u.ID)
		require.NoError(t, err)

		w := doProtected(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		token, _, err := jwt.GenerateSessionToken("user-999")
		require.NoError(t, err)

		w := doProtected(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, message(t, w), "user not found")
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		token, _, err := jwt.GenerateSessionToken(u.ID)
		require.NoError(t, err)

		w := doProtected(r, token)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			UserID string `json:"user_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, u.ID, body.UserID)
	})
}
