package middleware

import (
	"net/http"
	"strings"

	"voicebook/services/session"
	"voicebook/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware verifies the Bearer session token and checks that the
// session it names is still registered. The session ID is stored on the gin
// context under "sessionID" for handlers.
func SessionAuthMiddleware(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		if _, err := registry.Get(sessionID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session not found or already ended",
				"code":  0,
			})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
