package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger logs every request with zap. Paths in quiet (health checks and
// the like) are logged at debug level when they succeed.
func Logger(logger *zap.Logger, quiet ...string) gin.HandlerFunc {
	quietPaths := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		quietPaths[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("bytes", c.Writer.Size()),
		}
		if rid := c.GetString(requestIDKey); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if adminID := c.GetString(CtxAdminID); adminID != "" {
			fields = append(fields, zap.String("admin_id", adminID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		level, msg := zapcore.InfoLevel, "request completed"
		switch {
		case statusCode >= 500:
			level, msg = zapcore.ErrorLevel, "request failed"
		case statusCode >= 400:
			level, msg = zapcore.WarnLevel, "client error"
		case quietPaths[path]:
			level = zapcore.DebugLevel
		}
		if ce := logger.Check(level, msg); ce != nil {
			ce.Write(fields...)
		}
	}
}
