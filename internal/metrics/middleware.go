package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	screenRenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brewdex",
			Name:      "screen_render_duration_seconds",
			Help:      "Screen navigation duration in seconds, including directory fetches",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"route", "status"},
	)

	screenRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brewdex",
			Name:      "screen_renders_total",
			Help:      "Total number of screen navigations",
		},
		[]string{"route", "status"},
	)
)

var registerScreenOnce sync.Once

// RegisterScreenMetrics registers the screen render metrics. Called from main;
// repeated calls are no-ops.
func RegisterScreenMetrics() {
	registerScreenOnce.Do(func() {
		prometheus.MustRegister(screenRenderDuration)
		prometheus.MustRegister(screenRendersTotal)
	})
}

// Middleware records screen navigation duration and count.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(ww.status)

			// chi route pattern keeps brewery ids out of the label set
			route := normalizeRoute(chi.RouteContext(r.Context()).RoutePattern())

			screenRenderDuration.WithLabelValues(route, status).Observe(duration)
			screenRendersTotal.WithLabelValues(route, status).Inc()
		})
	}
}

func normalizeRoute(pattern string) string {
	if pattern == "" {
		return "unknown"
	}
	return pattern
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}
