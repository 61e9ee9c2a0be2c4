package media

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"wonderscape/internal/common"
)

// RateLimit caps requests per client IP within window. httprate sets the
// Retry-After header; a non-positive limit disables it.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			common.WriteError(w, http.StatusTooManyRequests, common.CodeRateLimited, "Too many requests. Please try again later.")
		}),
	)
}
