package middleware

import (
	"net/http"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/transport/http/response"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client in a fixed window. A cache outage lets traffic through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, err := a.cache.Incr(r.Context(), cacheKey, windowSecs)
			if err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(maxReqs)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			if count > int64(maxReqs) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	// X-Forwarded-For may list several hops; the first is the client
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}

	return host
}
