package middleware

import (
	"time"

	"github.com/todoapp/todo-api/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIdHeader = "X-Request-Id"
	requestLogKey   = "request_log"
)

// RequestId tags each request with an id (reusing a client supplied one) and
// writes an access line once the handler chain has finished.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIdHeader, id)
		log := logger.ForRequest(id)
		c.Set(requestLogKey, log)

		start := time.Now()
		c.Next()

		log.Debugf("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// RequestLog returns the logger tagged with the current request id, or an
// untagged one when RequestId is not installed.
func RequestLog(c *gin.Context) logger.Request {
	if v, ok := c.Get(requestLogKey); ok {
		if log, ok := v.(logger.Request); ok {
			return log
		}
	}
	return logger.ForRequest("")
}
