package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	"rtwgate/internal/rtw/verification"
	id "rtwgate/pkg/domain"
	dErrors "rtwgate/pkg/domain-errors"
	"rtwgate/pkg/platform/audit"
	"rtwgate/pkg/platform/sentinel"
	rtwstrings "rtwgate/pkg/platform/strings"
	"rtwgate/pkg/platform/tx"
	"rtwgate/pkg/requestcontext"
)

const (
	MsgDocumentTypeRequired  = "Document type is required"
	MsgUnknownDocumentType   = "Document type is not recognised"
	MsgStaffNameRequired     = "Staff name is required"
	MsgCheckDateRequired     = "Check date is required"
	MsgCheckDateInvalid      = "Check date must be a valid date (YYYY-MM-DD)"
	MsgVisaExpiryRequired    = "Visa or permit expiry date is required for this document type"
	MsgVisaExpiryInvalid     = "Visa expiry must be a valid date (YYYY-MM-DD)"
	MsgShareCodeRequired     = "Share code is required for an online check"
	MsgVerificationNotFound  = "Share code verification was not found or has expired. The check is recorded as pending verification."
	MsgVerificationMismatch  = "Share code verification was for a different share code. The check is recorded as pending verification."
	msgVerificationFailedFmt = "Share code verification did not succeed: "
)

// submission is AddCheckInput after parsing.
type submission struct {
	documentType eligibility.DocumentType
	staffName    string
	checkDate    eligibility.Date
	visaExpiry   *eligibility.Date
	shareCode    string
}

// AddCheck validates, re-evaluates and records a check. Business outcomes
// (missing fields, a blocked document) come back in the result with a nil
// Check and nothing written. The error is reserved for infrastructure faults
// and carries CodeInternal.
func (s *Service) AddCheck(ctx context.Context, in models.AddCheckInput) (*models.AddCheckResult, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := userFrom(ctx); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "rtw.add_check")
	defer span.End()

	sub, errs := parseSubmission(in)
	if len(errs) > 0 {
		s.metrics.IncCheck(in.DocumentType, "invalid")
		return rejected(errs, nil), nil
	}
	span.SetAttributes(attribute.String("rtw.document_type", string(sub.documentType)))

	rec, resolutionWarnings, err := s.resolveVerification(ctx, tenantID, in, sub.shareCode)
	if err != nil {
		span.SetStatus(codes.Error, "resolve verification")
		return nil, err
	}
	verified := rec != nil && rec.Outcome.Valid

	evaluationDate := sub.checkDate.Later(s.today(ctx))
	verdict := s.engine.Evaluate(eligibility.Request{
		DocumentType:   sub.documentType,
		On:             evaluationDate,
		OnlineVerified: verified,
	})
	s.metrics.IncEvaluation(string(sub.documentType), verdict.CanProceed)

	if !verdict.CanProceed {
		s.metrics.IncCheck(string(sub.documentType), "blocked")
		blocked := audit.ComplianceEvent{
			TenantID:     tenantID,
			Subject:      sub.staffName,
			Action:       audit.EventRTWCheckBlocked,
			DocumentType: string(sub.documentType),
			Decision:     "blocked",
			Reason:       strings.Join(verdict.Errors, " "),
		}
		if sub.shareCode != "" {
			blocked.SubjectIDHash = audit.HashIdentifier(sub.shareCode)
		}
		if err := s.emitAudit(ctx, blocked); err != nil {
			s.logger.WarnContext(ctx, "failed to audit blocked rtw check", "error", err)
		}
		return rejected(verdict.Errors, append(verdict.Warnings, resolutionWarnings...)), nil
	}

	check := s.buildCheck(ctx, tenantID, in, sub, verdict, rec)
	check.Warnings = rtwstrings.DedupeAndTrim(append(check.Warnings, resolutionWarnings...))

	recorded := audit.ComplianceEvent{
		TenantID:      tenantID,
		Subject:       check.ID.String(),
		Action:        audit.EventRTWCheckRecorded,
		DocumentType:  string(check.DocumentType),
		Decision:      string(check.Status),
		Reason:        check.FollowupReason,
		SubjectIDHash: audit.HashIdentifier(check.ShareCode),
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// No real transaction: emit first so a failed emit writes no check.
		if _, inTx := tx.From(ctx); !inTx {
			if err := s.emitAudit(ctx, recorded); err != nil {
				return err
			}
			return s.checks.Insert(ctx, check)
		}
		if err := s.checks.Insert(ctx, check); err != nil {
			return err
		}
		return s.emitAudit(ctx, recorded)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist check")
		s.logger.ErrorContext(ctx, "failed to record rtw check",
			"tenant_id", tenantID,
			"document_type", check.DocumentType,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record right-to-work check")
	}

	s.metrics.IncCheck(string(check.DocumentType), string(check.Status))
	s.logger.InfoContext(ctx, "rtw check recorded",
		"check_id", check.ID,
		"tenant_id", tenantID,
		"document_type", check.DocumentType,
		"status", check.Status,
	)
	return &models.AddCheckResult{
		Check:      check,
		Validation: models.Validation{Errors: []string{}, Warnings: check.Warnings},
	}, nil
}

func rejected(errs, warnings []string) *models.AddCheckResult {
	if warnings == nil {
		warnings = []string{}
	}
	return &models.AddCheckResult{
		Validation: models.Validation{Errors: errs, Warnings: rtwstrings.DedupeAndTrim(warnings)},
	}
}

func parseSubmission(in models.AddCheckInput) (submission, []string) {
	var (
		sub  submission
		errs = make([]string, 0)
	)

	rawType := strings.TrimSpace(in.DocumentType)
	dt, ok := eligibility.ParseDocumentType(rawType)
	switch {
	case rawType == "":
		errs = append(errs, MsgDocumentTypeRequired)
	case !ok:
		errs = append(errs, MsgUnknownDocumentType)
	}
	sub.documentType = dt

	sub.staffName = strings.TrimSpace(in.StaffName)
	if sub.staffName == "" {
		errs = append(errs, MsgStaffNameRequired)
	}

	if strings.TrimSpace(in.CheckDate) == "" {
		errs = append(errs, MsgCheckDateRequired)
	} else if d, err := eligibility.ParseDate(in.CheckDate); err != nil {
		errs = append(errs, MsgCheckDateInvalid)
	} else {
		sub.checkDate = d
	}

	if strings.TrimSpace(in.VisaExpiry) != "" {
		if d, err := eligibility.ParseDate(in.VisaExpiry); err != nil {
			errs = append(errs, MsgVisaExpiryInvalid)
		} else {
			sub.visaExpiry = &d
		}
	} else if ok && dt.ExpiryRequired() {
		errs = append(errs, MsgVisaExpiryRequired)
	}

	if strings.TrimSpace(in.ShareCode) != "" {
		code, valid := verification.NormalizeShareCode(in.ShareCode)
		if !valid {
			errs = append(errs, verification.MsgInvalidFormat)
		}
		sub.shareCode = code
	} else if ok && dt == eligibility.DocShareCode {
		errs = append(errs, MsgShareCodeRequired)
	}

	return sub, errs
}

// resolveVerification returns the outcome record to honour, or nil with a
// warning explaining why none applies. A record only counts for the share
// code it was issued for.
func (s *Service) resolveVerification(ctx context.Context, tenantID id.TenantID, in models.AddCheckInput, shareCode string) (*verification.Record, []string, error) {
	var rec *verification.Record
	switch {
	case in.VerificationID != nil:
		found, err := s.outcomes.Find(ctx, tenantID, *in.VerificationID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, []string{MsgVerificationNotFound}, nil
		}
		if err != nil {
			return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification outcome")
		}
		rec = found
	case in.Verification != nil:
		rec = in.Verification
	default:
		return nil, nil, nil
	}

	if shareCode == "" || rec.ShareCodeHash != audit.HashIdentifier(shareCode) {
		return nil, []string{MsgVerificationMismatch}, nil
	}
	if !rec.Outcome.Valid {
		return nil, []string{msgVerificationFailedFmt + rec.Outcome.Error}, nil
	}
	return rec, nil, nil
}

func (s *Service) buildCheck(ctx context.Context, tenantID id.TenantID, in models.AddCheckInput, sub submission, verdict eligibility.Verdict, rec *verification.Record) *models.Check {
	check := &models.Check{
		ID:                 id.NewCheckID(),
		TenantID:           tenantID,
		EmployeeID:         in.EmployeeID,
		StaffName:          sub.staffName,
		DocumentType:       sub.documentType,
		DocumentNumber:     strings.TrimSpace(in.DocumentNumber),
		Nationality:        strings.TrimSpace(in.Nationality),
		VisaType:           strings.TrimSpace(in.VisaType),
		VisaExpiry:         sub.visaExpiry,
		ShareCode:          sub.shareCode,
		VerificationMethod: models.MethodManual,
		CheckDate:          sub.checkDate,
		EvidencePath:       strings.TrimSpace(in.EvidencePath),
		Notes:              strings.TrimSpace(in.Notes),
		Status:             models.StatusPendingVerification,
		RequiresFollowup:   verdict.RequiresFollowup,
		FollowupReason:     verdict.FollowupReason,
		Warnings:           verdict.Warnings,
		CreatedBy:          requestcontext.UserID(ctx),
		CreatedAt:          requestcontext.Now(ctx).UTC().Truncate(time.Microsecond),
	}

	if rec != nil {
		check.ShareCodeVerified = true
		if at := rec.Outcome.VerifiedAt; at != nil {
			t := at.UTC().Truncate(time.Microsecond)
			check.ShareCodeVerifiedAt = &t
		}
		check.VerificationMethod = models.MethodOnline
		check.VerificationDetails = rec.Outcome.Details
		if check.VisaExpiry == nil && rec.Outcome.Details != nil {
			check.VisaExpiry = rec.Outcome.Details.ExpiryDate
		}
	}

	check.Status = deriveStatus(sub.documentType, rec != nil)
	check.NextCheckDate = eligibility.NextCheckDate(sub.documentType, check.VisaExpiry, sub.checkDate)
	return check
}

// deriveStatus: citizenship documents need no further verification. Any other
// document is verified once a valid outcome for its share code was honoured.
func deriveStatus(dt eligibility.DocumentType, onlineVerified bool) models.Status {
	if dt.IsCitizenship() || onlineVerified {
		return models.StatusVerified
	}
	return models.StatusPendingVerification
}
