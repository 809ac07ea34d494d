package service

import (
	"context"

	"rtwgate/internal/rtw/eligibility"
	id "rtwgate/pkg/domain"
	dErrors "rtwgate/pkg/domain-errors"
	"rtwgate/pkg/platform/audit"
	"rtwgate/pkg/platform/middleware/metadata"
	"rtwgate/pkg/requestcontext"
)

// today is the calendar date of the request clock in the service timezone.
func (s *Service) today(ctx context.Context) eligibility.Date {
	return eligibility.DateOf(requestcontext.Now(ctx), s.location)
}

func tenantFrom(ctx context.Context) (id.TenantID, error) {
	tenantID := requestcontext.TenantID(ctx)
	if tenantID.IsNil() {
		return id.TenantID{}, dErrors.New(dErrors.CodeUnauthorized, "tenant context is required")
	}
	return tenantID, nil
}

// userFrom rejects a request with no authenticated user. Compliance events
// must name who acted.
func userFrom(ctx context.Context) (id.UserID, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "user context is required")
	}
	return userID, nil
}

// emitAudit fills caller metadata and publishes. A nil publisher is a no-op.
func (s *Service) emitAudit(ctx context.Context, event audit.ComplianceEvent) error {
	if s.auditPublisher == nil {
		return nil
	}
	if event.TenantID.IsNil() {
		event.TenantID = requestcontext.TenantID(ctx)
	}
	if event.UserID.IsNil() {
		event.UserID = requestcontext.UserID(ctx)
	}
	if event.Device == "" {
		event.Device = metadata.DeviceLabel(requestcontext.UserAgent(ctx))
	}
	return s.auditPublisher.Emit(ctx, event)
}
