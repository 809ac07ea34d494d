package models

import (
	"time"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/verification"
	id "rtwgate/pkg/domain"
)

// Status is derived once when a check is recorded and never changes.
type Status string

const (
	StatusVerified            Status = "verified"
	StatusPendingVerification Status = "pending_verification"
)

type VerificationMethod string

const (
	MethodOnline VerificationMethod = "online"
	MethodManual VerificationMethod = "manual"
)

// Check is one immutable right-to-work check. A new check for the same
// subject is a new row; history is never rewritten.
type Check struct {
	ID                  id.CheckID               `json:"id"`
	TenantID            id.TenantID              `json:"tenant_id"`
	EmployeeID          *id.EmployeeID           `json:"employee_id,omitempty"`
	StaffName           string                   `json:"staff_name"`
	DocumentType        eligibility.DocumentType `json:"document_type"`
	DocumentNumber      string                   `json:"document_number,omitempty"`
	Nationality         string                   `json:"nationality,omitempty"`
	VisaType            string                   `json:"visa_type,omitempty"`
	VisaExpiry          *eligibility.Date        `json:"visa_expiry,omitempty"`
	ShareCode           string                   `json:"share_code,omitempty"`
	ShareCodeVerified   bool                     `json:"share_code_verified"`
	ShareCodeVerifiedAt *time.Time               `json:"share_code_verified_at,omitempty"`
	VerificationMethod  VerificationMethod       `json:"verification_method"`
	VerificationDetails *verification.Details    `json:"verification_details,omitempty"`
	CheckDate           eligibility.Date         `json:"check_date"`
	NextCheckDate       *eligibility.Date        `json:"next_check_date,omitempty"`
	EvidencePath        string                   `json:"evidence_path,omitempty"`
	Notes               string                   `json:"notes,omitempty"`
	Status              Status                   `json:"status"`
	RequiresFollowup    bool                     `json:"requires_followup"`
	FollowupReason      string                   `json:"followup_reason,omitempty"`
	Warnings            []string                 `json:"warnings"`
	CreatedBy           id.UserID                `json:"created_by"`
	CreatedAt           time.Time                `json:"created_at"`
}

// IsRetiredDocument reports whether the check relied on a BRP.
func (c *Check) IsRetiredDocument() bool {
	return c.DocumentType.Group() == eligibility.GroupRetired
}

// AddCheckInput is the caller's submission. Dates are raw strings so a
// malformed value surfaces as a validation error rather than a decode failure.
type AddCheckInput struct {
	EmployeeID     *id.EmployeeID
	StaffName      string
	DocumentType   string
	DocumentNumber string
	Nationality    string
	VisaType       string
	VisaExpiry     string
	ShareCode      string
	CheckDate      string
	EvidencePath   string
	Notes          string

	// VerificationID references an outcome stored by VerifyShareCode.
	VerificationID *id.VerificationID
	// Verification is a record obtained in-process. It is ignored when
	// VerificationID is set.
	Verification *verification.Record
}

// Validation carries blocking errors and advisory warnings. Both slices are
// always non-nil.
type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v Validation) Valid() bool { return len(v.Errors) == 0 }

// AddCheckResult has Check set only when a record was written.
type AddCheckResult struct {
	Check      *Check     `json:"check"`
	Validation Validation `json:"validation"`
}

// Summary is the tenant compliance overview.
type Summary struct {
	TotalChecks      int `json:"total_checks"`
	Verified         int `json:"verified"`
	Pending          int `json:"pending_verification"`
	ExpiringSoon     int `json:"expiring_soon"`
	Expired          int `json:"expired"`
	RequiresFollowup int `json:"requires_followup"`
	RetiredDocuments int `json:"retired_documents"`
}

// EligibilityResult pairs an engine verdict with the online-check rule for
// the eligibility endpoint.
type EligibilityResult struct {
	eligibility.Verdict
	RequiresOnlineVerification bool `json:"requires_online_verification"`
}
