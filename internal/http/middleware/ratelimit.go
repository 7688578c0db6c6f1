package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nba-possession-sim/internal/logging"
	"github.com/preston-bernstein/nba-possession-sim/internal/metrics"
)

// RateLimitMiddleware rejects POST requests once the limiter runs dry. Reads are never limited.
// A nil limiter disables the check.
func RateLimitMiddleware(limiter *rate.Limiter, logger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		path := normalizePath(r.URL.Path)
		recorder.RecordRateLimit(path)
		logging.Warn(logging.FromContext(r.Context(), logger), "simulation rate limited",
			slog.String(logging.FieldPath, path),
		)

		body := map[string]string{"error": "rate limit exceeded"}
		if reqID := RequestIDFromContext(r.Context()); reqID != "" {
			body["requestId"] = reqID
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// NewLimiter builds a token bucket allowing perSecond requests with the given burst. A
// non-positive rate returns nil.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
