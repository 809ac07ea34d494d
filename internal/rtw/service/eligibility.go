package service

import (
	"context"
	"strings"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	dErrors "rtwgate/pkg/domain-errors"
)

// ValidateDocumentType evaluates a document type on a date. ok is false for
// an unknown or empty type, meaning no verdict is available yet.
func (s *Service) ValidateDocumentType(documentType string, on eligibility.Date) (eligibility.Verdict, bool) {
	verdict, ok := s.engine.ValidateDocumentType(documentType, on)
	if ok {
		s.metrics.IncEvaluation(documentType, verdict.CanProceed)
	}
	return verdict, ok
}

// RequiresOnlineVerification reports whether the nationality and document
// type call for a Home Office online check.
func (s *Service) RequiresOnlineVerification(nationality, documentType string) bool {
	dt, ok := eligibility.ParseDocumentType(documentType)
	if !ok {
		return false
	}
	return eligibility.RequiresOnlineVerification(nationality, dt)
}

// CheckEligibility is the eligibility endpoint: the verdict for documentType
// on the given date (today when on is nil) plus the online-check rule.
func (s *Service) CheckEligibility(ctx context.Context, documentType, nationality string, on *eligibility.Date) (*models.EligibilityResult, error) {
	date := s.today(ctx)
	if on != nil && !on.IsZero() {
		date = *on
	}

	verdict, ok := s.ValidateDocumentType(documentType, date)
	if !ok {
		if strings.TrimSpace(documentType) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "document_type is required")
		}
		return nil, dErrors.New(dErrors.CodeValidation, "unknown document_type")
	}
	return &models.EligibilityResult{
		Verdict:                    verdict,
		RequiresOnlineVerification: s.RequiresOnlineVerification(nationality, documentType),
	}, nil
}
