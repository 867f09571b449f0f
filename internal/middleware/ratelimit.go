// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/astraid/astraid/internal/ratelimit"
)

// RateLimitMiddleware throttles an endpoint by client IP.
func RateLimitMiddleware(limiter *ratelimit.MemoryRateLimiter, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.GetClientIP(r)

			if !limiter.Allow(name + ":" + clientIP) {
				log.Printf("[RateLimit] Blocked %s request from %s", name, clientIP)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
