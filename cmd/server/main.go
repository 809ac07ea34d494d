package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	jwttoken "rtwgate/internal/jwt_token"
	"rtwgate/internal/platform/config"
	"rtwgate/internal/platform/httpserver"
	"rtwgate/internal/platform/kafka"
	"rtwgate/internal/platform/logger"
	"rtwgate/internal/platform/metrics"
	"rtwgate/internal/platform/postgres"
	"rtwgate/internal/platform/redis"
	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/evidence"
	"rtwgate/internal/rtw/handler"
	rtwmetrics "rtwgate/internal/rtw/metrics"
	"rtwgate/internal/rtw/service"
	"rtwgate/internal/rtw/store"
	"rtwgate/internal/rtw/verification"
	"rtwgate/pkg/platform/audit"
	"rtwgate/pkg/platform/audit/publishers/compliance"
	auditmemory "rtwgate/pkg/platform/audit/store/memory"
	auditpostgres "rtwgate/pkg/platform/audit/store/postgres"
	"rtwgate/pkg/platform/audit/worker"
	"rtwgate/pkg/platform/circuit"
	"rtwgate/pkg/platform/httputil"
	authmw "rtwgate/pkg/platform/middleware/auth"
	"rtwgate/pkg/platform/middleware/metadata"
	"rtwgate/pkg/platform/middleware/ratelimit"
	"rtwgate/pkg/platform/middleware/request"
	"rtwgate/pkg/platform/middleware/requesttime"
	"rtwgate/pkg/platform/tx"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and owns the process lifecycle. Business logic
// lives in internal/rtw.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("rtwgate exited with error", "error", err)
		os.Exit(1)
	}
}

type healthCheck func(ctx context.Context) error

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cutoffs, err := eligibility.ParseCutoffs(cfg.Cutoffs.BRPInvalidDate, cfg.Cutoffs.BRPRejectionDate)
	if err != nil {
		return fmt.Errorf("parse cutoffs: %w", err)
	}

	rtwMetrics := rtwmetrics.New()
	checks := make(map[string]healthCheck)

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	var (
		checkStore  service.CheckStore = store.NewInMemoryStore()
		txRunner    service.TxRunner   = tx.NoopRunner{}
		auditStore  audit.Store        = auditmemory.NewInMemoryStore()
		outboxStore *auditpostgres.Store
	)
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		checkStore = store.NewPostgres(db)
		txRunner = tx.NewRunner(db)
		outboxStore = auditpostgres.New(db)
		auditStore = outboxStore
		checks["postgres"] = db.PingContext
	} else {
		log.Warn("DATABASE_URL not set; using in-memory stores")
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var outcomes service.OutcomeStore = verification.NewInMemoryOutcomeStore()
	if redisClient != nil {
		defer redisClient.Close()
		outcomes = verification.NewRedisOutcomeStore(redisClient.Client)
		checks["redis"] = redisClient.Health
	}

	verifier := newVerifier(cfg.HomeOffice, rtwMetrics, log)

	objects, err := newEvidenceStore(ctx, cfg.Evidence, checks)
	if err != nil {
		return err
	}

	publisher := compliance.New(auditStore,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics()),
	)

	svc, err := service.New(eligibility.New(cutoffs), checkStore, verifier, outcomes,
		service.WithLogger(log),
		service.WithMetrics(rtwMetrics),
		service.WithAuditPublisher(publisher),
		service.WithTxRunner(txRunner),
		service.WithLocation(loc),
		service.WithVerificationTTL(cfg.VerificationTTL),
		service.WithVerifyTimeout(cfg.HomeOffice.Timeout*time.Duration(cfg.HomeOffice.MaxRetries+1)+5*time.Second),
	)
	if err != nil {
		return err
	}
	uploader := evidence.NewUploader(objects,
		evidence.WithPrefix(cfg.Evidence.Prefix),
		evidence.WithMaxBytes(cfg.Evidence.MaxBytes),
		evidence.WithAuditPublisher(publisher),
		evidence.WithMetrics(rtwMetrics),
		evidence.WithLogger(log),
	)

	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	if err != nil {
		return err
	}
	if producer != nil {
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
			return err
		}
		checks["kafka"] = producer.Health
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "rtwgate", "rtwgate-api")
	verifyLimiter := ratelimit.NewPerMinute(cfg.HomeOffice.TenantPerMinute, ratelimit.WithLogger(log))
	rtwHandler := handler.New(svc, uploader, log, handler.WithVerifyMiddleware(verifyLimiter.Middleware))
	router := newRouter(rtwHandler, jwttoken.NewJWTServiceAdapter(jwtService), checks, log)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting rtwgate", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if outboxStore != nil && producer != nil {
		relay := worker.NewWorker(outboxStore, producer, worker.WithLogger(log))
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("audit relay: %w", err)
			}
			return nil
		})
	} else {
		log.Warn("audit outbox relay disabled; requires DATABASE_URL and KAFKA_BROKERS")
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down rtwgate")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newVerifier(cfg config.HomeOfficeConfig, m *rtwmetrics.Metrics, log *slog.Logger) verification.Verifier {
	if cfg.URL == "" {
		log.Warn("HOME_OFFICE_URL not set; using stub share-code verifier")
		return verification.StubVerifier{}
	}
	return verification.NewHTTPVerifier(cfg.URL, cfg.APIKey,
		verification.WithTimeout(cfg.Timeout),
		verification.WithMaxRetries(cfg.MaxRetries),
		verification.WithRateLimit(cfg.RPS, 1),
		verification.WithCircuitBreaker(circuit.New("home_office")),
		verification.WithMetrics(m),
		verification.WithLogger(log),
	)
}

func newEvidenceStore(ctx context.Context, cfg config.EvidenceConfig, checks map[string]healthCheck) (evidence.ObjectStore, error) {
	if cfg.Backend != "s3" {
		return evidence.NewInMemoryStore(), nil
	}
	s3Store, err := evidence.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, err
	}
	checks["s3"] = s3Store.Health
	return s3Store, nil
}

func newRouter(rtwHandler *handler.Handler, validator authmw.JWTValidator, checks map[string]healthCheck, log *slog.Logger) http.Handler {
	httpMetrics := metrics.New()

	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(request.Logger(log))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(httpMetrics.LatencyMiddleware)

	r.Get("/healthz", healthHandler(checks))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(45 * time.Second))
		r.Use(authmw.RequireAuth(validator, log))
		rtwHandler.Register(r)
	})
	return r
}

func healthHandler(checks map[string]healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, body)
	}
}
