package service

import (
	"context"
	"errors"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	id "rtwgate/pkg/domain"
	dErrors "rtwgate/pkg/domain-errors"
	"rtwgate/pkg/platform/sentinel"
)

// DefaultDueWithinDays is the look-ahead for ListDue when none is given.
const DefaultDueWithinDays = 60

func (s *Service) GetCheck(ctx context.Context, checkID id.CheckID) (*models.Check, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	check, err := s.checks.FindByID(ctx, tenantID, checkID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "check not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load check")
	}
	return check, nil
}

// LatestForSubject returns the subject's most recent check by check date.
func (s *Service) LatestForSubject(ctx context.Context, employeeID id.EmployeeID) (*models.Check, error) {
	checks, err := s.ListForSubject(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(checks) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no checks for employee")
	}
	return checks[0], nil
}

// ListForSubject returns every check for the subject, newest first.
func (s *Service) ListForSubject(ctx context.Context, employeeID id.EmployeeID) ([]*models.Check, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	checks, err := s.checks.ListBySubject(ctx, tenantID, employeeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list checks")
	}
	return checks, nil
}

// ListDue returns checks whose next check date falls within withinDays of
// today, overdue ones included.
func (s *Service) ListDue(ctx context.Context, withinDays int) ([]*models.Check, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	if withinDays < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "within_days must not be negative")
	}
	cutoff := s.today(ctx).AddDays(withinDays)
	checks, err := s.checks.ListDueBefore(ctx, tenantID, cutoff)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list due checks")
	}
	return checks, nil
}

func (s *Service) ListRequiringFollowup(ctx context.Context) ([]*models.Check, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	checks, err := s.checks.ListRequiringFollowup(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list follow-up checks")
	}
	return checks, nil
}

// ListRetiredDocumentChecks returns checks that relied on a BRP and need
// remediation with an online check.
func (s *Service) ListRetiredDocumentChecks(ctx context.Context) ([]*models.Check, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	checks, err := s.checks.ListByDocumentType(ctx, tenantID, eligibility.DocBiometricResidencePermit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list BRP checks")
	}
	return checks, nil
}

func (s *Service) Summary(ctx context.Context) (*models.Summary, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	checks, err := s.checks.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to summarise checks")
	}
	summary := models.Summarize(checks, s.today(ctx))
	return &summary, nil
}
