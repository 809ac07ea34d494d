package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	id "rtwgate/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// Categories drive retention and routing on the consumer side.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// RTW checks are evidence for the statutory excuse and must be retained.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for operational visibility.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	TenantID  id.TenantID
	UserID    id.UserID
	// Subject is the entity acted on: an RTW check id or verification id.
	Subject      string
	Action       string
	DocumentType string
	Decision     string
	Reason       string
	RequestID    string
	// Device is a short "browser/os" label derived from the caller's User-Agent.
	Device string
	// SubjectIDHash is a SHA-256 of a sensitive identifier (share code) so the
	// trail can be correlated without storing the raw value.
	SubjectIDHash string
}

type AuditEvent string

const (
	EventRTWCheckRecorded     AuditEvent = "rtw_check_recorded"
	EventRTWCheckBlocked      AuditEvent = "rtw_check_blocked"
	EventShareCodeVerified    AuditEvent = "share_code_verified"
	EventShareCodeUnavailable AuditEvent = "share_code_unavailable"
	EventEvidenceUploaded     AuditEvent = "rtw_evidence_uploaded"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRTWCheckRecorded:     CategoryCompliance,
	EventRTWCheckBlocked:      CategoryCompliance,
	EventShareCodeVerified:    CategoryCompliance,
	EventEvidenceUploaded:     CategoryCompliance,
	EventShareCodeUnavailable: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// ComplianceEvent captures regulatory-significant actions requiring guaranteed persistence.
// Use with the compliance publisher for fail-closed semantics.
type ComplianceEvent struct {
	Timestamp     time.Time
	TenantID      id.TenantID // required
	UserID        id.UserID   // the HR user who performed the action (required)
	Subject       string
	Action        AuditEvent
	DocumentType  string
	Decision      string
	Reason        string
	SubjectIDHash string
	RequestID     string
	Device        string
}

// Category returns CategoryCompliance (always).
func (e ComplianceEvent) Category() EventCategory { return CategoryCompliance }

// ToEvent converts to the stored Event shape.
func (e ComplianceEvent) ToEvent() Event {
	return Event{
		Category:      CategoryCompliance,
		Timestamp:     e.Timestamp,
		TenantID:      e.TenantID,
		UserID:        e.UserID,
		Subject:       e.Subject,
		Action:        string(e.Action),
		DocumentType:  e.DocumentType,
		Decision:      e.Decision,
		Reason:        e.Reason,
		SubjectIDHash: e.SubjectIDHash,
		RequestID:     e.RequestID,
		Device:        e.Device,
	}
}

// Store persists audit events. Postgres implementations join the caller's
// transaction when one is present in the context.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// OutboxEntry is one outbox row awaiting relay to the message broker.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// HashIdentifier returns the hex SHA-256 of a sensitive identifier.
func HashIdentifier(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
