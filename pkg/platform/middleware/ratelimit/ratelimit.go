// Package ratelimit caps request rates per tenant with token buckets.
package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	id "rtwgate/pkg/domain"
	"rtwgate/pkg/platform/httputil"
	"rtwgate/pkg/requestcontext"
)

type exceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// TenantLimiter keeps one bucket per tenant. A request without a tenant is
// passed through; RequireAuth rejects those before they reach the limiter.
type TenantLimiter struct {
	mu        sync.Mutex
	buckets   map[id.TenantID]*rate.Limiter
	limit     rate.Limit
	burst     int
	perMinute int
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*TenantLimiter)

func WithLogger(logger *slog.Logger) Option {
	return func(l *TenantLimiter) { l.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(l *TenantLimiter) { l.now = now }
}

// NewPerMinute allows perMinute requests per tenant per minute, all of which
// may arrive as a burst. perMinute <= 0 yields nil, which disables limiting.
func NewPerMinute(perMinute int, opts ...Option) *TenantLimiter {
	if perMinute <= 0 {
		return nil
	}
	l := &TenantLimiter{
		buckets:   make(map[id.TenantID]*rate.Limiter),
		limit:     rate.Limit(float64(perMinute) / 60),
		burst:     perMinute,
		perMinute: perMinute,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *TenantLimiter) bucket(tenantID id.TenantID) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[tenantID]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[tenantID] = b
	}
	return b
}

// Middleware answers 429 with Retry-After once the tenant's bucket is empty.
// A nil limiter passes everything through.
func (l *TenantLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tenantID := requestcontext.TenantID(ctx)
		if tenantID.IsNil() {
			next.ServeHTTP(w, r)
			return
		}

		now := l.now()
		b := l.bucket(tenantID)
		allowed := b.AllowN(now, 1)
		remaining := int(math.Max(0, math.Floor(b.TokensAt(now))))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.perMinute))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := int(math.Ceil(60 / float64(l.perMinute)))
			l.logger.WarnContext(ctx, "tenant rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"tenant_id", tenantID.String(),
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, exceededResponse{
				Error:      "rate_limit_exceeded",
				Message:    "Too many requests for this tenant. Please try again later.",
				RetryAfter: retryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
