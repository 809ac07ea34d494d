package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/metrics"
	"rtwgate/pkg/platform/circuit"
	rtwstrings "rtwgate/pkg/platform/strings"
)

const maxResponseBytes = 1 << 20

type verifyRequest struct {
	ShareCode   string `json:"shareCode"`
	DateOfBirth string `json:"dateOfBirth"`
}

// verifyResponse mirrors the upstream payload. Valid is a pointer so a body
// without it is treated as malformed rather than as a rejection.
type verifyResponse struct {
	Valid             *bool    `json:"valid"`
	Name              string   `json:"name"`
	ImmigrationStatus string   `json:"immigrationStatus"`
	RightToWork       string   `json:"rightToWork"`
	ExpiryDate        string   `json:"expiryDate"`
	WorkRestrictions  []string `json:"workRestrictions"`
	VerificationCode  string   `json:"verificationCode"`
	Error             string   `json:"error"`
}

// HTTPVerifier calls the Home Office checking endpoint.
type HTTPVerifier struct {
	endpoint   string
	apiKey     string
	client     *http.Client
	timeout    time.Duration
	maxRetries int
	newBackOff func() backoff.BackOff
	breaker    *circuit.Breaker
	limiter    *rate.Limiter
	tracer     trace.Tracer
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

type HTTPOption func(*HTTPVerifier)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(v *HTTPVerifier) { v.client = c }
}

// WithTimeout bounds each upstream attempt.
func WithTimeout(d time.Duration) HTTPOption {
	return func(v *HTTPVerifier) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// WithMaxRetries allows n extra attempts after a transient failure. Zero,
// the default, means exactly one outbound call.
func WithMaxRetries(n int) HTTPOption {
	return func(v *HTTPVerifier) {
		if n >= 0 {
			v.maxRetries = n
		}
	}
}

func WithBackOff(f func() backoff.BackOff) HTTPOption {
	return func(v *HTTPVerifier) { v.newBackOff = f }
}

func WithCircuitBreaker(b *circuit.Breaker) HTTPOption {
	return func(v *HTTPVerifier) { v.breaker = b }
}

// WithRateLimit caps outbound calls per second. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) HTTPOption {
	return func(v *HTTPVerifier) {
		if rps <= 0 {
			v.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		v.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithMetrics(m *metrics.Metrics) HTTPOption {
	return func(v *HTTPVerifier) { v.metrics = m }
}

func WithLogger(logger *slog.Logger) HTTPOption {
	return func(v *HTTPVerifier) { v.logger = logger }
}

func WithClock(now func() time.Time) HTTPOption {
	return func(v *HTTPVerifier) { v.now = now }
}

func NewHTTPVerifier(endpoint, apiKey string, opts ...HTTPOption) *HTTPVerifier {
	v := &HTTPVerifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{},
		timeout:  10 * time.Second,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		tracer: otel.Tracer("rtwgate/verification"),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify settles to an Outcome on every path.
func (v *HTTPVerifier) Verify(ctx context.Context, shareCode string, dateOfBirth eligibility.Date) Outcome {
	start := time.Now()
	ctx, span := v.tracer.Start(ctx, "homeoffice.verify_share_code",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("rtw.share_code_prefix", rtwstrings.Mask(shareCode, 3))),
	)
	defer span.End()
	defer func() { v.metrics.ObserveVerificationLatency(time.Since(start)) }()

	if v.breaker != nil && !v.breaker.Allow() {
		span.SetStatus(codes.Error, string(ErrorCircuitOpen))
		v.metrics.IncVerificationOutcome(string(ErrorCircuitOpen))
		v.logger.WarnContext(ctx, "home office verification skipped, circuit open")
		return Unavailable()
	}

	var outcome Outcome
	operation := func() error {
		out, err := v.attempt(ctx, shareCode, dateOfBirth)
		if err != nil {
			if IsRetryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		outcome = out
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(v.newBackOff(), uint64(v.maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		v.recordFailure(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(CategoryOf(err)))
		v.metrics.IncVerificationOutcome("unavailable")
		v.logger.WarnContext(ctx, "home office verification failed",
			"category", CategoryOf(err),
			"share_code", rtwstrings.Mask(shareCode, 3),
			"error", err,
		)
		return Unavailable()
	}

	v.recordSuccess(ctx)
	span.SetAttributes(attribute.Bool("rtw.valid", outcome.Valid))
	if outcome.Valid {
		v.metrics.IncVerificationOutcome("valid")
	} else {
		v.metrics.IncVerificationOutcome("invalid")
	}
	return outcome
}

func (v *HTTPVerifier) attempt(ctx context.Context, shareCode string, dateOfBirth eligibility.Date) (Outcome, error) {
	if v.limiter != nil {
		if err := v.limiter.Wait(ctx); err != nil {
			return Outcome{}, newProviderError(ErrorRateLimited, "client rate limit wait aborted", err)
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	body, err := json.Marshal(verifyRequest{ShareCode: shareCode, DateOfBirth: dateOfBirth.String()})
	if err != nil {
		return Outcome{}, newProviderError(ErrorBadData, "encode request", err)
	}
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, newProviderError(ErrorContractMismatch, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if v.apiKey != "" {
		req.Header.Set("X-API-Key", v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.metrics.IncVerificationAttempt("transport")
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() != nil {
			return Outcome{}, newProviderError(ErrorTimeout, "request timed out", err)
		}
		return Outcome{}, newProviderError(ErrorProviderOutage, "request failed", err)
	}
	defer resp.Body.Close()
	v.metrics.IncVerificationAttempt(statusClass(resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Outcome{}, newProviderError(ErrorProviderOutage, "read response", err)
	}
	return parseResponse(resp.StatusCode, raw, v.now())
}

// parseResponse maps an upstream reply to an Outcome or a categorised error.
func parseResponse(status int, body []byte, now time.Time) (Outcome, error) {
	switch {
	case status == http.StatusTooManyRequests:
		return Outcome{}, newProviderError(ErrorRateLimited, "upstream rate limited", nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Outcome{}, newProviderError(ErrorAuthentication, fmt.Sprintf("status %d", status), nil)
	case status >= 500:
		return Outcome{}, newProviderError(ErrorProviderOutage, fmt.Sprintf("status %d", status), nil)
	case status < 200 || status > 299:
		return Outcome{}, newProviderError(ErrorContractMismatch, fmt.Sprintf("unexpected status %d", status), nil)
	}

	var payload verifyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Outcome{}, newProviderError(ErrorBadData, "decode response", err)
	}
	if payload.Valid == nil {
		return Outcome{}, newProviderError(ErrorBadData, "response missing valid flag", nil)
	}
	if !*payload.Valid {
		return Invalid(payload.Error), nil
	}

	details := &Details{
		Name:              strings.TrimSpace(payload.Name),
		ImmigrationStatus: strings.TrimSpace(payload.ImmigrationStatus),
		RightToWork:       strings.TrimSpace(payload.RightToWork),
		WorkRestrictions:  rtwstrings.DedupeAndTrim(payload.WorkRestrictions),
		ReferenceNumber:   payload.VerificationCode,
	}
	if payload.ExpiryDate != "" {
		expiry, err := eligibility.ParseDate(firstDateComponent(payload.ExpiryDate))
		if err != nil {
			return Outcome{}, newProviderError(ErrorBadData, "malformed expiry date", err)
		}
		details.ExpiryDate = &expiry
	}

	verifiedAt := now.UTC()
	return Outcome{Valid: true, Details: details, VerifiedAt: &verifiedAt}, nil
}

// firstDateComponent accepts "2026-12-31" and "2026-12-31T00:00:00Z".
func firstDateComponent(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

func (v *HTTPVerifier) recordFailure(ctx context.Context) {
	if v.breaker == nil {
		return
	}
	if _, change := v.breaker.RecordFailure(); change.Opened {
		v.logger.ErrorContext(ctx, "home office circuit opened", "breaker", v.breaker.Name())
	}
}

func (v *HTTPVerifier) recordSuccess(ctx context.Context) {
	if v.breaker == nil {
		return
	}
	if _, change := v.breaker.RecordSuccess(); change.Closed {
		v.logger.InfoContext(ctx, "home office circuit closed", "breaker", v.breaker.Name())
	}
}
