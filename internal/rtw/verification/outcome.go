// Package verification talks to the Home Office right-to-work checking
// service and normalises every result into an Outcome. Verify never returns
// an error: transport faults are an expected business outcome.
package verification

import (
	"context"
	"strings"
	"time"

	"rtwgate/internal/rtw/eligibility"
	id "rtwgate/pkg/domain"
)

const (
	MsgServiceUnavailable = "Verification service unavailable"
	MsgInvalidFormat      = "Invalid share code format. Share codes should be 9 characters (e.g., W12345678 or W12-345-678)."
	MsgMissingInput       = "Share code and date of birth are required"
)

// Details describe the holder when the service confirms the share code.
type Details struct {
	Name              string            `json:"name"`
	ImmigrationStatus string            `json:"immigration_status"`
	RightToWork       string            `json:"right_to_work"`
	ExpiryDate        *eligibility.Date `json:"expiry_date,omitempty"`
	WorkRestrictions  []string          `json:"work_restrictions,omitempty"`
	ReferenceNumber   string            `json:"reference_number,omitempty"`
}

// Outcome is the normalised verification result. Details is set only when
// Valid; Error only when not.
type Outcome struct {
	// ID is assigned when the outcome is stored for later reference.
	ID         id.VerificationID `json:"id"`
	Valid      bool              `json:"valid"`
	Details    *Details          `json:"details,omitempty"`
	Error      string            `json:"error,omitempty"`
	VerifiedAt *time.Time        `json:"verified_at,omitempty"`
}

// Unavailable is the outcome for any transport or upstream failure.
func Unavailable() Outcome {
	return Outcome{Valid: false, Error: MsgServiceUnavailable}
}

// Invalid is a business rejection with a reason from the service.
func Invalid(reason string) Outcome {
	if strings.TrimSpace(reason) == "" {
		reason = "Share code could not be verified"
	}
	return Outcome{Valid: false, Error: reason}
}

// Verifier is the capability the rest of the module depends on.
type Verifier interface {
	Verify(ctx context.Context, shareCode string, dateOfBirth eligibility.Date) Outcome
}

// NormalizeShareCode strips separators and uppercases. The boolean is false
// unless exactly nine alphanumerics remain.
func NormalizeShareCode(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	code := b.String()
	return code, len(code) == 9
}
