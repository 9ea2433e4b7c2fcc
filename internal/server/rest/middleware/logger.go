package middleware

import (
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/gin-gonic/gin"
)

func Logger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID := c.GetString(RequestIDHeader)
		logger.Info(c.Request.Context(), "request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", requestID,
			"ip", c.ClientIP(),
		)
	}
}

// Recovery turns a panic into a 500 and logs it.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		logger.Error(c.Request.Context(), "panic recovered",
			"panic", rec,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDHeader),
		)
		respond.Abort(c, http.StatusInternalServerError, respond.MsgInternal)
	})
}
