package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fssotc/website/pkg/jwt"
	"github.com/fssotc/website/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxAdminID = "admin_id"
	CtxRole    = "role"
	CtxClaims  = "claims"
)

// Blacklist reports revoked token ids. *redis.Client implements it.
type Blacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth validates the access token in "Authorization: Bearer <token>".
// A nil blacklist, or one that errors, lets the token through.
func JWTAuth(jwtMgr *jwt.Manager, blacklist Blacklist) gin.HandlerFunc {
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

		if claims.TokenType != jwt.TypeAccess {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 11003, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(CtxAdminID, claims.AdminID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// RoleAuth allows only the given roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(CtxRole)
		if userRole == "" {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "permission denied")
		c.Abort()
	}
}
