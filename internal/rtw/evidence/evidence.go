// Package evidence stores uploaded right-to-work document images. Checks only
// keep the returned object key.
package evidence

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"rtwgate/internal/rtw/metrics"
	dErrors "rtwgate/pkg/domain-errors"
	"rtwgate/pkg/platform/audit"
	"rtwgate/pkg/requestcontext"
)

const defaultMaxBytes = 10 << 20

var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// ObjectStore writes one object under key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.ComplianceEvent) error
}

// Uploader validates and stores evidence files.
type Uploader struct {
	store          ObjectStore
	prefix         string
	maxBytes       int64
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	logger         *slog.Logger
	newID          func() string
}

type Option func(*Uploader)

func WithPrefix(prefix string) Option {
	return func(u *Uploader) {
		u.prefix = strings.Trim(prefix, "/")
	}
}

func WithMaxBytes(n int64) Option {
	return func(u *Uploader) {
		if n > 0 {
			u.maxBytes = n
		}
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(u *Uploader) { u.auditPublisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(u *Uploader) { u.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) { u.logger = logger }
}

func NewUploader(store ObjectStore, opts ...Option) *Uploader {
	u := &Uploader{
		store:    store,
		prefix:   "rtw-documents",
		maxBytes: defaultMaxBytes,
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Uploader) MaxBytes() int64 { return u.maxBytes }

// Upload stores body under "<prefix>/<random>.<ext>" and returns the key.
// Only PDF and PNG/JPEG images are accepted.
func (u *Uploader) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	contentType, ok := contentTypes[ext]
	if !ok {
		u.metrics.IncEvidenceUpload("rejected")
		return "", dErrors.New(dErrors.CodeValidation, "evidence must be a PDF, PNG or JPEG file")
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(body, u.maxBytes+1))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read evidence file")
	}
	if n == 0 {
		u.metrics.IncEvidenceUpload("rejected")
		return "", dErrors.New(dErrors.CodeValidation, "evidence file is empty")
	}
	if n > u.maxBytes {
		u.metrics.IncEvidenceUpload("rejected")
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("evidence file exceeds %d bytes", u.maxBytes))
	}

	key := fmt.Sprintf("%s/%s.%s", u.prefix, u.newID(), ext)
	if err := u.store.Put(ctx, key, contentType, buf.Bytes()); err != nil {
		u.metrics.IncEvidenceUpload("error")
		u.logger.ErrorContext(ctx, "evidence upload failed", "key", key, "error", err)
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store evidence")
	}

	if u.auditPublisher != nil {
		if err := u.auditPublisher.Emit(ctx, audit.ComplianceEvent{
			TenantID: requestcontext.TenantID(ctx),
			UserID:   requestcontext.UserID(ctx),
			Subject:  key,
			Action:   audit.EventEvidenceUploaded,
		}); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit evidence upload")
		}
	}

	u.metrics.IncEvidenceUpload("stored")
	return key, nil
}
