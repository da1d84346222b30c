package middleware

import (
	"time"

	"github.com/moohomor/storyforge/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with its status and duration at debug
// level, failures at warning.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status >= 500 {
			logger.Warningf("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		} else {
			logger.Debugf("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		}
	}
}
