package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clipstream/internal/domain"
	"clipstream/internal/pkg/response"
	"clipstream/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserReader confirms the token's subject still exists before a
// request is let through.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireAuth gates a route group behind a valid access token. The
// token comes from the Authorization header, or from the access_token
// cookie when the header is absent.
func RequireAuth(tokens *token.Service, users UserReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			raw, _ = c.Cookie("access_token")
		}
		if raw == "" {
			response.AbortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := tokens.Verify(raw, token.KindAccess)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		// A deleted account keeps a valid token until it expires.
		// Reject it here.
		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.AbortError(c, http.StatusUnauthorized, "Account no longer exists")
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "Failed to authenticate request")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("username", user.Username)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
