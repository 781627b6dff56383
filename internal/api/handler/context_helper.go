package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/internal/api/middleware"
	"github.com/fssotc/website/pkg/jwt"
	"github.com/fssotc/website/pkg/response"
)

// MustGetAdminID extracts the admin id set by JWTAuth. On failure it writes
// a 401 and returns false; the caller should return right away.
func MustGetAdminID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxAdminID)
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

// MustGetClaims extracts the parsed access token claims.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "not authenticated")
		return nil, false
	}
	return claims, true
}
