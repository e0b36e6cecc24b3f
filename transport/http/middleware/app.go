package middleware

import (
	"context"
	"fmt"
	"net/http"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/infras/prometheus"
	"shareit/shared/cache"
	"shareit/shared/constant"
	"shareit/shared/logger"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	otelHTTPScopeName = "http"
	unmatchedRoute    = "unmatched"
)

type AppMiddleware interface {
	RequestID(next http.Handler) http.Handler
	Tracing(next http.Handler) http.Handler
	Metrics(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	Identity(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel    otel.Otel
	config  *config.Config
	cache   cache.RedisCache
	metrics prometheus.Metrics
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, metrics prometheus.Metrics) AppMiddleware {
	return &appMiddleware{
		otel:    otel,
		config:  config,
		cache:   cache,
		metrics: metrics,
	}
}

// RequestID reuses the caller's X-Request-ID or issues a new one, and tags the request logger with it.
func (a *appMiddleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constant.RequestHeaderRequestID)
		if requestID == constant.Empty {
			requestID = uuid.NewString()
		}

		w.Header().Set(constant.RequestHeaderRequestID, requestID)

		ctx := context.WithValue(r.Context(), constant.ContextKeyRequestID, requestID)
		ctx = logger.WithRequestID(ctx, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.route":       routePattern(r),
			"http.status_code": ww.Status(),
		})
	})
}

// Metrics records request count and latency per matched route pattern.
func (a *appMiddleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		a.metrics.ObserveHTTP(routePattern(r), r.Method, status, time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}

	pattern := rctx.RoutePattern()
	if pattern == constant.Empty {
		return unmatchedRoute
	}

	return pattern
}
