// Package service orchestrates right-to-work checks: eligibility, share-code
// verification and the immutable check record.
package service

import (
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/metrics"
	"rtwgate/pkg/platform/tx"
)

const (
	defaultVerificationTTL = 30 * time.Minute
	defaultVerifyTimeout   = 15 * time.Second
)

// Service is the caller-facing surface of the RTW module.
type Service struct {
	engine          *eligibility.Engine
	checks          CheckStore
	outcomes        OutcomeStore
	verifier        Verifier
	tx              TxRunner
	auditPublisher  AuditPublisher
	metrics         *metrics.Metrics
	logger          *slog.Logger
	tracer          trace.Tracer
	location        *time.Location
	verificationTTL time.Duration
	verifyTimeout   time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithTxRunner sets the unit of work for check writes. Defaults to running
// without a transaction, which suits the in-memory stores.
func WithTxRunner(runner TxRunner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// WithLocation sets the timezone "today" is observed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithVerificationTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.verificationTTL = ttl
		}
	}
}

// WithVerifyTimeout bounds a whole VerifyShareCode call, retries included.
func WithVerifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.verifyTimeout = d
		}
	}
}

// New constructs a Service.
func New(engine *eligibility.Engine, checks CheckStore, verifier Verifier, outcomes OutcomeStore, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, errors.New("eligibility engine is required")
	}
	if checks == nil {
		return nil, errors.New("check store is required")
	}
	if verifier == nil {
		return nil, errors.New("verifier is required")
	}
	if outcomes == nil {
		return nil, errors.New("outcome store is required")
	}

	s := &Service{
		engine:          engine,
		checks:          checks,
		outcomes:        outcomes,
		verifier:        verifier,
		tx:              tx.NoopRunner{},
		logger:          slog.Default(),
		tracer:          otel.Tracer("rtwgate/rtw"),
		location:        time.UTC,
		verificationTTL: defaultVerificationTTL,
		verifyTimeout:   defaultVerifyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
