package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"checkout/pkg/platform/httputil"
	"checkout/pkg/requestcontext"
)

// Middleware limits requests per client IP and endpoint class. Store
// failures let the request through.
type Middleware struct {
	store    Store
	logger   *slog.Logger
	limits   map[Class]Limit
	disabled bool
}

type Option func(*Middleware)

// WithLimit overrides the limit of one class.
func WithLimit(class Class, limit Limit) Option {
	return func(m *Middleware) {
		if limit.Requests > 0 && limit.Window > 0 {
			m.limits[class] = limit
		}
	}
}

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(store Store, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		logger: logger,
		limits: make(map[Class]Limit, len(DefaultLimits)),
	}
	for class, limit := range DefaultLimits {
		m.limits[class] = limit
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

type rateLimitResponse struct {
	Error             string `json:"error"`
	ErrorDescription  string `json:"error_description"`
	RetryAfterSeconds int    `json:"retry_after"`
}

// Limit returns middleware enforcing the limit of class.
func (m *Middleware) Limit(class Class) func(http.Handler) http.Handler {
	limit, ok := m.limits[class]
	if !ok {
		limit = DefaultLimits[ClassCheckout]
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			client := requestcontext.ClientIP(ctx)
			if client == "" {
				client = "unknown"
			}

			result, err := m.store.Allow(ctx, key(class, client), limit.Requests, limit.Window)
			if err != nil {
				m.logger.WarnContext(ctx, "rate limit check failed, allowing request",
					"class", class,
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
			if !result.Allowed {
				retryAfter := max(int(time.Until(result.ResetAt).Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				httputil.WriteJSON(w, http.StatusTooManyRequests, rateLimitResponse{
					Error:             "rate_limit_exceeded",
					ErrorDescription:  "too many requests, retry later",
					RetryAfterSeconds: retryAfter,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
