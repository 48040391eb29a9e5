package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/citymetro/schedule-registry/internal/metrics"
)

// NewMetrics returns a middleware that records every request on the given
// collector: a counter by method and status class, and a latency histogram.
func NewMetrics(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			class := strconv.Itoa(ww.Status()/100) + "xx"
			c.RequestsTotal.WithLabelValues(r.Method, class).Inc()
			c.RequestDuration.Observe(time.Since(start).Seconds())
		})
	}
}
