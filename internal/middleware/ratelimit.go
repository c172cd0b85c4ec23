package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"epipulse/internal/config"
)

// RateLimit applies a global token-bucket limit to all requests. The
// dataset is small and recomputed in memory, so a single shared bucket
// is enough; no per-client tracking.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
