// Package eligibility decides whether a right-to-work document is acceptable
// on a given calendar date.
//
// Everything here is pure: no I/O, no clock reads. Callers pass the date to
// evaluate at, and the statutory cutoff dates arrive as Cutoffs configuration.
package eligibility

import (
	"fmt"

	rtwstrings "rtwgate/pkg/platform/strings"
)

// Cutoffs are the statutory dates for retired documents.
type Cutoffs struct {
	// BRPInvalid is the first day a BRP is no longer acceptable.
	BRPInvalid Date
	// BRPRejection is the first day the statutory defence for BRP-based
	// checks is withdrawn entirely. Never earlier than BRPInvalid.
	BRPRejection Date
}

// DefaultCutoffs returns the dates in force in the UK.
func DefaultCutoffs() Cutoffs {
	return Cutoffs{
		BRPInvalid:   NewDate(2024, 10, 31),
		BRPRejection: NewDate(2025, 6, 1),
	}
}

// ParseCutoffs builds Cutoffs from YYYY-MM-DD strings.
func ParseCutoffs(brpInvalid, brpRejection string) (Cutoffs, error) {
	invalid, err := ParseDate(brpInvalid)
	if err != nil {
		return Cutoffs{}, fmt.Errorf("brp invalid date: %w", err)
	}
	rejection, err := ParseDate(brpRejection)
	if err != nil {
		return Cutoffs{}, fmt.Errorf("brp rejection date: %w", err)
	}
	if rejection.Before(invalid) {
		return Cutoffs{}, fmt.Errorf("brp rejection date %s is before invalid date %s", rejection, invalid)
	}
	return Cutoffs{BRPInvalid: invalid, BRPRejection: rejection}, nil
}

// Verdict is the engine's answer for one document type on one date.
// CanProceed is false iff Errors is non-empty, which only happens for a
// retired document evaluated on or after its cutoff.
type Verdict struct {
	CanProceed bool     `json:"can_proceed"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
	// RecommendedAction is set only when Errors is non-empty.
	RecommendedAction   string `json:"recommended_action,omitempty"`
	RequiresOnlineCheck bool   `json:"requires_online_check"`
	RequiresFollowup    bool   `json:"requires_followup"`
	FollowupReason      string `json:"followup_reason,omitempty"`
}

// Request is the general form of an evaluation.
type Request struct {
	DocumentType DocumentType
	On           Date
	// OnlineVerified suppresses the share-code reminder once a valid
	// outcome has been obtained.
	OnlineVerified bool
}

type Engine struct {
	cutoffs Cutoffs
}

func New(cutoffs Cutoffs) *Engine {
	return &Engine{cutoffs: cutoffs}
}

func (e *Engine) Cutoffs() Cutoffs { return e.cutoffs }

// ValidateDocumentType evaluates a raw document type value on a date. The
// boolean is false when the value names no known document: there is no
// verdict yet and the caller must ask for a selection.
func (e *Engine) ValidateDocumentType(documentType string, on Date) (Verdict, bool) {
	dt, ok := ParseDocumentType(documentType)
	if !ok {
		return Verdict{}, false
	}
	return e.Evaluate(Request{DocumentType: dt, On: on}), true
}

// Evaluate applies the rule table. An unknown type yields a proceedable
// verdict with no findings; callers gate on ParseDocumentType first.
func (e *Engine) Evaluate(req Request) Verdict {
	r := rules[req.DocumentType]
	v := Verdict{
		CanProceed:       true,
		Errors:           []string{},
		Warnings:         append([]string{}, r.warnings...),
		RequiresFollowup: r.followupReason != "",
		FollowupReason:   r.followupReason,
	}

	switch r.group {
	case GroupShareCode:
		v.RequiresOnlineCheck = true
		if !req.OnlineVerified {
			v.Warnings = append(v.Warnings, MsgShareCodeVerificationRequired)
		}
	case GroupRetired:
		e.applyRetired(&v, req.On)
	}

	v.Warnings = rtwstrings.DedupeAndTrim(v.Warnings)
	return v
}

func (e *Engine) applyRetired(v *Verdict, on Date) {
	if !on.OnOrAfter(e.cutoffs.BRPInvalid) {
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"Biometric Residence Permits stop being acceptable on %s. Plan an online share-code check before then.",
			e.cutoffs.BRPInvalid.Human()))
		return
	}

	v.CanProceed = false
	v.Errors = append(v.Errors,
		fmt.Sprintf("Biometric Residence Permits (BRPs) are no longer valid for right to work checks since %s.",
			e.cutoffs.BRPInvalid.Human()),
		MsgBRPUseShareCode,
	)
	if on.OnOrAfter(e.cutoffs.BRPRejection) {
		v.Errors = append(v.Errors, MsgBRPRejected)
	}
	v.RecommendedAction = ActionBRPUseShareCode
}
