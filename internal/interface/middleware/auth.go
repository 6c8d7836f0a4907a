package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	repo "github.com/dwisatya/go-auth-service/internal/domain/repository"
	"github.com/dwisatya/go-auth-service/pkg/helpers"
	"github.com/dwisatya/go-auth-service/pkg/response"
)

const (
	// CtxUserIDKey holds the authenticated user's ID in the Gin context.
	CtxUserIDKey = "userID"
	// CtxUserKey holds the resolved user entity in the Gin context.
	CtxUserKey = "user"
)

// Auth validates the session cookie and resolves the carried user ID against
// the store. Expired tokens are reported distinctly from malformed ones; a
// token whose user no longer exists is rejected as well.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized access, please log in to continue", nil)
			return
		}

		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.AbortError(c, http.StatusUnauthorized, "session expired, please log in again", nil)
				return
			}
			response.AbortError(c, http.StatusUnauthorized, "invalid session token, please log in again", nil)
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "authentication failed, user not found", nil)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}
