package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"centrale-operativa/backend/pkg/jwt"
	"centrale-operativa/backend/pkg/response"
)

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>. Tokens are issued by the external auth
// collaborator with the shared secret; this side only verifies.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_name", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleAuth checks that the authenticated operator holds one of the
// allowed roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		current := role.(string)
		for _, r := range allowedRoles {
			if current == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient role")
		c.Abort()
	}
}

// ServiceKeyAuth guards the internal intake endpoints. The auth collaborator
// presents its key in X-Service-Key; only the bcrypt hash is configured here.
func ServiceKeyAuth(serviceKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if serviceKeyHash == "" {
			response.Forbidden(c, 10003, "service intake disabled")
			c.Abort()
			return
		}

		key := c.GetHeader("X-Service-Key")
		if key == "" {
			response.Unauthorized(c, 10002, "missing service key")
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(serviceKeyHash), []byte(key)); err != nil {
			response.Unauthorized(c, 10002, "invalid service key")
			c.Abort()
			return
		}

		c.Next()
	}
}
