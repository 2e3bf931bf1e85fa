package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

const ContextKeyUserID = "user_id"

// AuthMiddleware returns Gin middleware that verifies the bearer token and
// injects the authenticated user id. A missing header is 401; a token that
// fails verification is 403.
func AuthMiddleware(verifier port.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		userID, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil || userID == "" {
			requestID, _ := c.Get("request_id")
			log.Printf("[%s] token verification failed: %v", requestID, err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID extracts the authenticated user id from the Gin context.
func GetUserID(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", domain.ErrUnauthorized
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
