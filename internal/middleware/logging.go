package middleware

import (
	"time"

	"matchboxd_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs every completed request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.HTTPLog(
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
