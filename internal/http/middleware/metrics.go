package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type RequestObserver interface {
	ObserveRequest(method, path, status string, elapsed time.Duration)
}

// Metrics records every request against its route template, so ids in the
// path do not explode label cardinality.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
