// Package domain holds typed identifiers shared across rtwgate packages.
//
// Every identifier is a distinct UUID-backed type so a tenant ID can never be
// passed where a check ID is expected. Construct them with the Parse functions
// at trust boundaries; the Parse functions reject nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "rtwgate/pkg/domain-errors"
)

type (
	// TenantID identifies a customer organisation. All RTW data is scoped by it.
	TenantID uuid.UUID
	// UserID identifies the authenticated staff member performing an action.
	UserID uuid.UUID
	// EmployeeID identifies the subject of a right-to-work check once employed.
	EmployeeID uuid.UUID
	// CheckID identifies a persisted right-to-work check record.
	CheckID uuid.UUID
	// VerificationID references a stored share-code verification outcome.
	VerificationID uuid.UUID
)

func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return parsed, nil
}

func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID("tenant ID", s)
	return TenantID(u), err
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user ID", s)
	return UserID(u), err
}

func ParseEmployeeID(s string) (EmployeeID, error) {
	u, err := parseUUID("employee ID", s)
	return EmployeeID(u), err
}

func ParseCheckID(s string) (CheckID, error) {
	u, err := parseUUID("check ID", s)
	return CheckID(u), err
}

func ParseVerificationID(s string) (VerificationID, error) {
	u, err := parseUUID("verification ID", s)
	return VerificationID(u), err
}

func (id TenantID) String() string       { return uuid.UUID(id).String() }
func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id EmployeeID) String() string     { return uuid.UUID(id).String() }
func (id CheckID) String() string        { return uuid.UUID(id).String() }
func (id VerificationID) String() string { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id EmployeeID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CheckID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id VerificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewCheckID returns a random check identifier.
func NewCheckID() CheckID { return CheckID(uuid.New()) }

// NewVerificationID returns a random verification reference.
func NewVerificationID() VerificationID { return VerificationID(uuid.New()) }

// Text marshalling keeps ids as canonical strings in JSON bodies and stored
// payloads.

func (id TenantID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id EmployeeID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id CheckID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id VerificationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *TenantID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UserID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *EmployeeID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CheckID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *VerificationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
