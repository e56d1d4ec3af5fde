package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/ratelimit"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

const RateLimitRemainingHeader = "X-RateLimit-Remaining"

type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles next per client address. A limiter failure lets the request
// through.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())
		client := clientAddr(r)

		decision, err := m.limiter.Allow(r.Context(), client)
		if err != nil {
			logger.Error("Rate limit check failed", slog.String("client", client), slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}

		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(seconds))

			logger.Warn("Rate limit exceeded", slog.String("client", client), slog.Int("retry_after", seconds))
			metrics.RecordCheckoutFailure("rate_limited")
			response.Error(w, appErrors.RateLimitedError("Too many orders, try again later"))
			return
		}

		if decision.Remaining >= 0 {
			w.Header().Set(RateLimitRemainingHeader, strconv.FormatInt(decision.Remaining, 10))
		}

		next.ServeHTTP(w, r)

	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
