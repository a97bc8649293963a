package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gmbdash/gmb-backend/pkg/clientip"
)

const (
	// GenerationRateLimitWindow is the fixed counting window.
	GenerationRateLimitWindow = 60 * time.Second
	// GenerationRateLimitMax is the number of generation calls allowed per
	// IP per window. Generation routes spend paid upstream quota, so the
	// limit is deliberately tight.
	GenerationRateLimitMax = 10
	// generationRateLimitPrefix is the Redis key prefix.
	generationRateLimitPrefix = "ratelimit:gen:"
)

// GenerationRateLimit limits generation requests per client IP using a
// Redis fixed window. Redis being unreachable fails open: the request is
// allowed through rather than blocked on infrastructure trouble.
func GenerationRateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := generationRateLimitPrefix + clientip.RealClientIP(r)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, GenerationRateLimitWindow)
			}

			if count > GenerationRateLimitMax {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"error":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(GenerationRateLimitWindow.Seconds()))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(GenerationRateLimitMax))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(GenerationRateLimitMax-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}
