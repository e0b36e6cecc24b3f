package middleware

import (
	"context"
	"net/http"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/response"
	"strconv"
	"strings"
)

// Identity reads the caller from X-Sharer-User-Id. Requests without the header pass through
// anonymously; handlers that need a caller ask UserID.
func (a *appMiddleware) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(constant.RequestHeaderSharerUserID))
		if raw == constant.Empty {
			next.ServeHTTP(w, r)

			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			response.WithError(w, failure.InvalidUserHeader)

			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, userID)))
	})
}

// UserID returns the caller set by Identity.
func UserID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(constant.ContextKeyUserID).(int64)
	if !ok {
		return 0, failure.MissingUserHeader
	}

	return userID, nil
}
