// Package handler exposes the right-to-work service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	"rtwgate/internal/rtw/service"
	"rtwgate/internal/rtw/verification"
	id "rtwgate/pkg/domain"
	dErrors "rtwgate/pkg/domain-errors"
	"rtwgate/pkg/platform/httputil"
	"rtwgate/pkg/requestcontext"
)

// Service is the right-to-work surface the handler needs.
type Service interface {
	CheckEligibility(ctx context.Context, documentType, nationality string, on *eligibility.Date) (*models.EligibilityResult, error)
	VerifyShareCode(ctx context.Context, shareCode, dateOfBirth string) (*verification.Outcome, error)
	AddCheck(ctx context.Context, in models.AddCheckInput) (*models.AddCheckResult, error)
	GetCheck(ctx context.Context, checkID id.CheckID) (*models.Check, error)
	ListForSubject(ctx context.Context, employeeID id.EmployeeID) ([]*models.Check, error)
	ListDue(ctx context.Context, withinDays int) ([]*models.Check, error)
	ListRequiringFollowup(ctx context.Context) ([]*models.Check, error)
	ListRetiredDocumentChecks(ctx context.Context) ([]*models.Check, error)
	Summary(ctx context.Context) (*models.Summary, error)
}

type EvidenceUploader interface {
	Upload(ctx context.Context, filename string, body io.Reader) (string, error)
	MaxBytes() int64
}

type Handler struct {
	service  Service
	evidence EvidenceUploader
	logger   *slog.Logger
	// verifyLimit guards the share-code route, which spends upstream quota.
	verifyLimit []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithVerifyMiddleware adds middleware to the share-code verification route.
func WithVerifyMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) { h.verifyLimit = append(h.verifyLimit, mw...) }
}

func New(service Service, evidence EvidenceUploader, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:  service,
		evidence: evidence,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the /rtw routes. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/rtw", func(r chi.Router) {
		r.Post("/eligibility", h.handleEligibility)
		r.With(h.verifyLimit...).Post("/share-codes/verify", h.handleVerifyShareCode)
		r.Post("/checks", h.handleAddCheck)
		r.Get("/checks", h.handleListForSubject)
		r.Get("/checks/due", h.handleListDue)
		r.Get("/checks/followups", h.handleListFollowups)
		r.Get("/checks/retired-documents", h.handleListRetired)
		r.Get("/checks/{id}", h.handleGetCheck)
		r.Get("/summary", h.handleSummary)
		r.Post("/evidence", h.handleUploadEvidence)
	})
}

type checksResponse struct {
	Checks []*models.Check `json:"checks"`
}

type evidenceResponse struct {
	Path string `json:"path"`
}

func (h *Handler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req EligibilityRequest
	if !h.decode(w, r, &req) {
		return
	}
	on, err := req.date()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.CheckEligibility(ctx, req.DocumentType, req.Nationality, on)
	if err != nil {
		h.writeServiceError(ctx, w, "eligibility check failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleVerifyShareCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req VerifyShareCodeRequest
	if !h.decode(w, r, &req) {
		return
	}
	outcome, err := h.service.VerifyShareCode(ctx, req.ShareCode, req.DateOfBirth)
	if err != nil {
		h.writeServiceError(ctx, w, "share code verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

// handleAddCheck answers 201 when a record was written and 422 when the
// submission was rejected; both carry {check, validation}.
func (h *Handler) handleAddCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req AddCheckRequest
	if !h.decode(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.service.AddCheck(ctx, in)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add right-to-work check", err)
		return
	}
	if result.Check == nil {
		h.logger.InfoContext(ctx, "right-to-work check rejected",
			"request_id", requestcontext.RequestID(ctx),
			"document_type", req.DocumentType,
			"errors", len(result.Validation.Errors),
		)
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	checkID, err := id.ParseCheckID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "check id must be a UUID"))
		return
	}
	check, err := h.service.GetCheck(ctx, checkID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get check", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, check)
}

func (h *Handler) handleListForSubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.URL.Query().Get("employee_id")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "employee_id is required"))
		return
	}
	employeeID, err := id.ParseEmployeeID(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "employee_id must be a UUID"))
		return
	}
	checks, err := h.service.ListForSubject(ctx, employeeID)
	h.writeChecks(ctx, w, checks, err)
}

func (h *Handler) handleListDue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	withinDays := service.DefaultDueWithinDays
	if raw := r.URL.Query().Get("within_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "within_days must be an integer"))
			return
		}
		withinDays = n
	}
	checks, err := h.service.ListDue(ctx, withinDays)
	h.writeChecks(ctx, w, checks, err)
}

func (h *Handler) handleListFollowups(w http.ResponseWriter, r *http.Request) {
	checks, err := h.service.ListRequiringFollowup(r.Context())
	h.writeChecks(r.Context(), w, checks, err)
}

func (h *Handler) handleListRetired(w http.ResponseWriter, r *http.Request) {
	checks, err := h.service.ListRetiredDocumentChecks(r.Context())
	h.writeChecks(r.Context(), w, checks, err)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.service.Summary(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to build summary", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleUploadEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// Multipart framing needs some room over the file limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.evidence.MaxBytes()+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "evidence file is too large"))
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	path, err := h.evidence.Upload(ctx, header.Filename, file)
	if err != nil {
		h.writeServiceError(ctx, w, "evidence upload failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, evidenceResponse{Path: path})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(ctx, "invalid request body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	if err := validateRequest(dst); err != nil {
		httputil.WriteError(w, err)
		return false
	}
	return true
}

func (h *Handler) writeChecks(ctx context.Context, w http.ResponseWriter, checks []*models.Check, err error) {
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list checks", err)
		return
	}
	if checks == nil {
		checks = []*models.Check{}
	}
	httputil.WriteJSON(w, http.StatusOK, checksResponse{Checks: checks})
}

// writeServiceError logs internal faults at error level and passes domain
// errors through to the client.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
