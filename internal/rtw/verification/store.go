package verification

import (
	"context"
	"time"

	id "rtwgate/pkg/domain"
)

// Record is an outcome held for later lookup by AddCheck. ShareCodeHash binds
// it to the share code it was issued for, so an outcome cannot be replayed
// against a different code.
type Record struct {
	Outcome       Outcome     `json:"outcome"`
	TenantID      id.TenantID `json:"tenant_id"`
	ShareCodeHash string      `json:"share_code_hash"`
}

// OutcomeStore keeps verification outcomes for a limited time. Find returns
// sentinel.ErrNotFound for a missing or expired entry.
type OutcomeStore interface {
	Save(ctx context.Context, rec Record, ttl time.Duration) error
	Find(ctx context.Context, tenantID id.TenantID, verificationID id.VerificationID) (*Record, error)
}
