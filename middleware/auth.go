// Package middleware provides gin middleware shared across routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/auth"
)

const (
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "userID"
	// EmailKey is the gin context key for the authenticated user's email.
	EmailKey = "userEmail"
)

// GetUserID extracts the authenticated user ID from the gin context.
// Returns zero if the request was not authenticated.
func GetUserID(c *gin.Context) int64 {
	userID, _ := c.Get(UserIDKey)
	id, _ := userID.(int64)
	return id
}

// RequireAuth validates the Bearer token on every request and stores the
// resolved user identity in the gin context. Handlers pass that identity
// explicitly into the service layer; nothing below this middleware reads
// ambient auth state.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
