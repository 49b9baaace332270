package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/randevu-scheduler/internal/auth"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Oturum açmanız gerekiyor.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Geçersiz yetkilendirme başlığı.")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Oturumunuzun süresi dolmuş, lütfen tekrar giriş yapın.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets only the listed roles through. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, c.GetString(ContextUserRole)) {
			httperr.Forbidden(c, httperr.CodeForbidden, "Bu işlem için yetkiniz yok.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Caller returns the authenticated user id and role.
func Caller(c *gin.Context) (uint, string) {
	return c.GetUint(ContextUserID), c.GetString(ContextUserRole)
}
