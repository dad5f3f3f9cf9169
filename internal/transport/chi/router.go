package chi

import (
	"net/http"
	"net/url"
	"time"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/location"
	logpkg "github.com/kailas-cloud/brewdex/internal/logger"
	"github.com/kailas-cloud/brewdex/internal/metrics"
)

// Screens renders the screens behind each route.
type Screens interface {
	ListScreen(w http.ResponseWriter, r *http.Request)
	DetailScreen(w http.ResponseWriter, r *http.Request)
	NotFoundScreen(w http.ResponseWriter, r *http.Request)
}

// NewRouter routes locations to screens. It is dispatched in-process by the
// session; nothing listens on a socket.
func NewRouter(screens Screens, logger *zap.Logger) http.Handler {
	r := gochi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(screenRecoverer(logger))
	r.Use(navigationLog(logger))
	r.Use(metrics.Middleware())

	r.Get(location.ListPath, screens.ListScreen)
	r.Get(location.DetailPattern, screens.DetailScreen)
	r.NotFound(screens.NotFoundScreen)
	r.MethodNotAllowed(screens.NotFoundScreen)
	return r
}

// URLParam returns a route parameter, unescaped when the location carried an escaped path.
func URLParam(r *http.Request, key string) string {
	v := gochi.URLParam(r, key)
	if r.URL.RawPath == "" {
		// chi matched on the decoded path
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// screenRecoverer turns a panic inside a screen into an error screen instead of
// tearing the session down.
func screenRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("location", r.URL.RequestURI()),
						zap.Stack("stacktrace"),
					)
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte("Something went wrong.\n"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// navigationLog emits a canonical log line per navigation and stores a
// request-scoped logger in the context.
func navigationLog(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			navLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), navLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line: one per navigation
			navLogger.Info("navigation",
				zap.String("location", r.URL.RequestURI()),
				zap.String("route", gochi.RouteContext(r.Context()).RoutePattern()),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.Int("screen_bytes", ww.BytesWritten()),
			)
		})
	}
}
