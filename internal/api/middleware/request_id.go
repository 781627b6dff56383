package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen caps client supplied ids so they cannot flood the logs.
const requestIDMaxLen = 64

type requestIDCtxKey struct{}

// RequestID propagates the request id header, generating a UUID when the
// client sent none or sent one that is too long or not a plain token.
// The id is also stored on the request context for the service layer.
func RequestID(header string) gin.HandlerFunc {
	if header == "" {
		header = "X-Request-ID"
	}
	return func(c *gin.Context) {
		rid := c.GetHeader(header)
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDCtxKey{}, rid))
		c.Header(header, rid)

		c.Next()
	}
}

// RequestIDFrom returns the id RequestID attached to ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDCtxKey{}).(string)
	return rid
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		ch := rid[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.', ch == ':':
		default:
			return false
		}
	}
	return true
}
