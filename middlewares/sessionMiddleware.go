package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/torquehub/garage_backend/config"
	"github.com/torquehub/garage_backend/utils"
)

// SessionMiddleware checks that a presented token is still registered as an
// active session, so Logout revokes access before the token expires. When
// redis is down the check degrades to signature-only validation.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")
		if auth == "" {
			c.Next()
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		if config.GetRedisDB() == nil {
			c.Next()
			return
		}

		username, exists, err := config.GetRedisValue("Token:" + token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		ctx := utils.SetUsernameInContext(c.Request.Context(), username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
