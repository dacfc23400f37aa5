package middleware

import (
	"net/http"
	"strconv"
	"time"

	"health-first-server/pkg/metrics"

	"github.com/gorilla/mux"
)

type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

func NewMetricsMiddleware(metrics *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Handle records request count and latency labelled by route template, so
// path parameters do not explode label cardinality.
func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		status := strconv.Itoa(rec.status)

		m.metrics.RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		m.metrics.RequestTotal.WithLabelValues(r.Method, path, status).Inc()
	})
}
