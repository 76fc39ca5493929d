// Package middleware provides the gin middleware shared across routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account_backend/internal/platform/token"
)

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "userID"

// AuthRequired returns a middleware that validates the Bearer access token
// and restricts the route to authenticated users.
// The policy is fail-closed: a missing secret, a provider error or any
// token defect rejects the request before the handler runs.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		userID, err := token.ParseUserID(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user ID set by AuthRequired.
// The second return value is false on routes that did not pass the guard.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
