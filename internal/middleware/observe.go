package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yusufkecer/calorist-backend/internal/logger"
)

const (
	RequestIDHeader = "X-Request-ID"

	RequestIDKey contextKey = "request_id"
)

// Metrics holds the HTTP instruments.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// NewMetrics creates the HTTP instruments and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calorist",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "calorist",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds by method/route/status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "calorist",
			Name:      "http_inflight_requests",
			Help:      "In-flight HTTP requests.",
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.inflight)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Observe tags each request with an id, records it in m and writes one
// access log line per request. A nil m skips instrumentation.
func Observe(log *logger.Logger, m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" || len(requestID) > 64 {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)
			r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, requestID))

			if m != nil {
				m.inflight.Inc()
				defer m.inflight.Dec()
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := routeTemplate(r)
			dur := time.Since(start)
			if m != nil {
				status := strconv.Itoa(rec.status)
				m.requests.WithLabelValues(r.Method, route, status).Inc()
				m.latency.WithLabelValues(r.Method, route, status).Observe(dur.Seconds())
			}

			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", rec.status,
				"duration_ms", dur.Milliseconds(),
				"request_id", requestID,
			}
			switch {
			case rec.status >= 500:
				log.Error("HTTP request", fields...)
			case rec.status >= 400:
				log.Warn("HTTP request", fields...)
			default:
				log.Info("HTTP request", fields...)
			}
		})
	}
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unknown"
}
