package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/verification"
	id "rtwgate/pkg/domain"
	dErrors "rtwgate/pkg/domain-errors"
	"rtwgate/pkg/platform/audit"
	rtwstrings "rtwgate/pkg/platform/strings"
)

const MsgInvalidDateOfBirth = "Date of birth must be a valid date (YYYY-MM-DD)"

// VerifyShareCode checks a share code with the Home Office and stores the
// outcome under a fresh ID so AddCheck can reference it. Input and upstream
// problems come back as an invalid Outcome; only storage and audit faults
// are errors.
func (s *Service) VerifyShareCode(ctx context.Context, shareCode, dateOfBirth string) (*verification.Outcome, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := userFrom(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(shareCode) == "" || strings.TrimSpace(dateOfBirth) == "" {
		out := verification.Invalid(verification.MsgMissingInput)
		return &out, nil
	}
	code, ok := verification.NormalizeShareCode(shareCode)
	if !ok {
		s.metrics.IncVerificationOutcome("bad_format")
		out := verification.Invalid(verification.MsgInvalidFormat)
		return &out, nil
	}
	dob, err := eligibility.ParseDate(dateOfBirth)
	if err != nil {
		out := verification.Invalid(MsgInvalidDateOfBirth)
		return &out, nil
	}

	ctx, span := s.tracer.Start(ctx, "rtw.verify_share_code")
	defer span.End()

	verifyCtx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	out := s.verifier.Verify(verifyCtx, code, dob)
	cancel()

	out.ID = id.NewVerificationID()
	span.SetAttributes(
		attribute.String("rtw.verification_id", out.ID.String()),
		attribute.Bool("rtw.valid", out.Valid),
	)

	rec := verification.Record{
		Outcome:       out,
		TenantID:      tenantID,
		ShareCodeHash: audit.HashIdentifier(code),
	}
	if err := s.outcomes.Save(ctx, rec, s.verificationTTL); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store verification outcome")
	}

	action, decision := audit.EventShareCodeVerified, "invalid"
	switch {
	case out.Valid:
		decision = "valid"
	case out.Error == verification.MsgServiceUnavailable:
		action, decision = audit.EventShareCodeUnavailable, "unavailable"
	}
	if err := s.emitAudit(ctx, audit.ComplianceEvent{
		TenantID:      tenantID,
		Subject:       out.ID.String(),
		Action:        action,
		DocumentType:  string(eligibility.DocShareCode),
		Decision:      decision,
		Reason:        out.Error,
		SubjectIDHash: rec.ShareCodeHash,
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit share code verification")
	}

	s.logger.InfoContext(ctx, "share code verified",
		"verification_id", out.ID,
		"share_code", rtwstrings.Mask(code, 3),
		"result", decision,
	)
	return &out, nil
}
