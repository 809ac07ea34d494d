package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks CheckStore,OutcomeStore,AuditPublisher,Verifier

import (
	"context"
	"time"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	"rtwgate/internal/rtw/verification"
	id "rtwgate/pkg/domain"
	"rtwgate/pkg/platform/audit"
)

// CheckStore persists checks. Implementations must honour the transaction
// carried in ctx.
type CheckStore interface {
	Insert(ctx context.Context, check *models.Check) error
	FindByID(ctx context.Context, tenantID id.TenantID, checkID id.CheckID) (*models.Check, error)
	ListBySubject(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) ([]*models.Check, error)
	ListDueBefore(ctx context.Context, tenantID id.TenantID, cutoff eligibility.Date) ([]*models.Check, error)
	ListRequiringFollowup(ctx context.Context, tenantID id.TenantID) ([]*models.Check, error)
	ListByDocumentType(ctx context.Context, tenantID id.TenantID, documentType eligibility.DocumentType) ([]*models.Check, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Check, error)
}

type OutcomeStore interface {
	Save(ctx context.Context, rec verification.Record, ttl time.Duration) error
	Find(ctx context.Context, tenantID id.TenantID, verificationID id.VerificationID) (*verification.Record, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.ComplianceEvent) error
}

type Verifier interface {
	Verify(ctx context.Context, shareCode string, dateOfBirth eligibility.Date) verification.Outcome
}

// TxRunner scopes the check insert and its audit row to one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
