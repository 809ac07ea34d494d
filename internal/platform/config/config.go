package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Everything comes from the
// environment with development defaults so main stays lean.
type Server struct {
	Addr          string
	Environment   string
	JWTSigningKey string
	Timezone      string

	Database   DatabaseConfig
	Redis      RedisConfig
	HomeOffice HomeOfficeConfig
	Cutoffs    CutoffConfig
	Evidence   EvidenceConfig
	Kafka      KafkaConfig

	// VerificationTTL bounds how long a stored share-code outcome can be
	// referenced by a subsequent AddCheck.
	VerificationTTL time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// HomeOfficeConfig configures the share-code verification client. An empty
// URL selects the stub verifier.
type HomeOfficeConfig struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// RPS caps outbound calls per second; zero disables the limiter.
	RPS float64
	// TenantPerMinute caps verify requests per tenant; zero disables it.
	TenantPerMinute int
}

// CutoffConfig holds the statutory dates for retired documents, as
// YYYY-MM-DD strings so the eligibility package owns parsing.
type CutoffConfig struct {
	BRPInvalidDate   string
	BRPRejectionDate string
}

// EvidenceConfig selects where uploaded documents go. Backend "s3" uses the
// AWS default credential chain; anything else keeps files in memory.
type EvidenceConfig struct {
	Backend  string
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
	// MaxBytes caps uploaded evidence size.
	MaxBytes int64
}

type KafkaConfig struct {
	Brokers           []string
	AuditTopic        string
	Partitions        int32
	ReplicationFactor int16
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          getEnv("RTW_ADDR", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Timezone:      getEnv("RTW_TIMEZONE", "Europe/London"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		HomeOffice: HomeOfficeConfig{
			URL:    os.Getenv("HOME_OFFICE_URL"),
			APIKey: os.Getenv("HOME_OFFICE_API_KEY"),
		},
		Cutoffs: CutoffConfig{
			BRPInvalidDate:   getEnv("BRP_INVALID_DATE", "2024-10-31"),
			BRPRejectionDate: getEnv("BRP_REJECTION_DATE", "2025-06-01"),
		},
		Evidence: EvidenceConfig{
			Backend:  getEnv("EVIDENCE_BACKEND", "memory"),
			Bucket:   getEnv("EVIDENCE_BUCKET", "compliance-docs"),
			Prefix:   "rtw-documents",
			Region:   getEnv("AWS_REGION", "eu-west-2"),
			Endpoint: os.Getenv("EVIDENCE_S3_ENDPOINT"),
			MaxBytes: 10 << 20,
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:        getEnv("AUDIT_TOPIC", "rtw.audit"),
			Partitions:        6,
			ReplicationFactor: 1,
		},
	}

	var err error
	if cfg.HomeOffice.Timeout, err = durationEnv("HOME_OFFICE_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.VerificationTTL, err = durationEnv("VERIFICATION_TTL", 30*time.Minute); err != nil {
		return Server{}, err
	}
	if cfg.HomeOffice.MaxRetries, err = intEnv("HOME_OFFICE_MAX_RETRIES", 0); err != nil {
		return Server{}, err
	}
	if cfg.HomeOffice.MaxRetries < 0 {
		return Server{}, fmt.Errorf("HOME_OFFICE_MAX_RETRIES must not be negative")
	}
	if cfg.HomeOffice.RPS, err = floatEnv("HOME_OFFICE_RPS", 0); err != nil {
		return Server{}, err
	}
	if cfg.HomeOffice.TenantPerMinute, err = intEnv("VERIFY_RATE_PER_MINUTE", 30); err != nil {
		return Server{}, err
	}

	if cfg.IsProduction() && cfg.JWTSigningKey == "dev-secret-key-change-in-production" {
		return Server{}, fmt.Errorf("JWT_SIGNING_KEY must be set in production")
	}
	return cfg, nil
}

func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
