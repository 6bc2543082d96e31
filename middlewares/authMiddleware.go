package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/torquehub/garage_backend/utils"
)

// AuthMiddleware validates the bearer token and loads its claims into the
// request context. Requests without an Authorization header pass through;
// RequireAuth guards the routes that need a user.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")

		validate, err := utils.JwtValidate(token)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, ok := validate.Claims.(*utils.JwtCustomClaim)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUserIdInContext(ctx, claims.ID)
		ctx = utils.SetGarageIdInContext(ctx, claims.GarageId)
		ctx = utils.SetIsAdminInContext(ctx, claims.Role == "A")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects requests that reached a protected route without a
// validated garage scope.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		garageId, ok := utils.GetGarageIdFromContext(c.Request.Context())
		if !ok || garageId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
