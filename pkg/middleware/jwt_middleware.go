package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripgen/pkg/utils"
)

// Gin context keys set by the middleware in this package.
const (
	ContextTraceID = "trace_id"
	ContextUserID  = "user_id"
	ContextRole    = "Role"
)

// JWTAuthMiddleware requires an HS256 bearer token signed with secret and
// exposes its subject to handlers as ContextUserID.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid", "expected a Bearer token")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token", err.Error())
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RoleMiddleware runs after JWTAuthMiddleware and admits only requiredRole.
func RoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions", "requires role "+requiredRole)
			c.Abort()
			return
		}
		c.Next()
	}
}
