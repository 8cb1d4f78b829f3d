package middleware

import (
	"net/http"
	"strings"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the claims in the
// request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		if claims["id"] == nil || claims["role"] == nil || claims["username"] == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "token missing required fields",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RequireRole aborts the request unless the actor holds one of the given
// roles. The backend check is authoritative; the SPA's role-based UI is
// only a hint.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "UNAUTHENTICATED",
			})
			return
		}

		for _, role := range roles {
			if user.UserRole() == role {
				c.Next()
				return
			}
		}

		utils.Logger.Warn().
			Str("username", user.Username).
			Str("role", user.Role).
			Str("path", c.Request.URL.Path).
			Msg("role check failed")

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "insufficient permissions",
			"code":    "FORBIDDEN",
		})
	}
}

// RequireModerator is shorthand for moderator-or-admin gates.
func RequireModerator() gin.HandlerFunc {
	return RequireRole(models.UserRoleMODERATOR, models.UserRoleADMIN)
}
