package middleware

import (
	"github.com/gin-gonic/gin"

	"taskkeeper/internal/transport/http/response"
)

// RequireRole gates a route group on the role claim set by AuthJWT.
// Admin-only endpoints are not secret, so this answers 403 rather than
// hiding behind a 404.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get(ContextRoleKey)
		if !exists {
			response.Error(c, 401, response.CodeUnauthorized, "user not found in token")
			c.Abort()
			return
		}

		userRole, ok := roleAny.(string)
		if !ok || userRole != role {
			response.Error(c, 403, response.CodeForbidden, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}
