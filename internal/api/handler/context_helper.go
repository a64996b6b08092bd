package handler

import (
	"github.com/gin-gonic/gin"

	"centrale-operativa/backend/pkg/response"
)

// MustGetOperatorID extracts operator_id from the Gin context. When the auth
// middleware did not inject it, a 401 is written and ok is false; the caller
// should return immediately.
func MustGetOperatorID(c *gin.Context) (string, bool) {
	v, exists := c.Get("operator_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetOperatorName extracts operator_name from the Gin context.
func MustGetOperatorName(c *gin.Context) (string, bool) {
	v, exists := c.Get("operator_name")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
