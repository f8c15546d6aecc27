package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics returns middleware that counts completed requests by route and
// status code on the given meter. The counter is a no-op when telemetry
// export is disabled.
func Metrics(meter metric.Meter) gin.HandlerFunc {
	counter, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Completed HTTP requests by route and status."))
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		counter.Add(c.Request.Context(), 1,
			metric.WithAttributes(
				attribute.String("http.route", route),
				attribute.String("http.status", strconv.Itoa(c.Writer.Status())),
			))
	}
}
