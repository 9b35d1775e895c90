package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/metrics"
)

// Metrics records request counts and latency keyed by the matched route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
