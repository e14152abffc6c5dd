package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs every request with latency and status. Authorization and
// Cookie headers carry credentials and are never written to the log.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scrub := func(h http.Header) http.Header {
			clone := h.Clone()
			for k := range clone {
				lower := strings.ToLower(k)
				if strings.Contains(lower, "authorization") || strings.Contains(lower, "cookie") {
					clone[k] = []string{"[redacted]"}
				}
			}
			return clone
		}

		log.Debug("incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("origin", c.GetHeader("Origin")),
			zap.Any("hdr", scrub(c.Request.Header)),
		)

		ts := time.Now()
		c.Next()

		log.Info("request done",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(ts)),
		)
	}
}
