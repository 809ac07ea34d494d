package eligibility

import (
	rtwstrings "rtwgate/pkg/platform/strings"
)

// exemptNationalities have an unrestricted right to work. Matching is on the
// whole normalised value so "Ukrainian" does not match "uk".
var exemptNationalities = map[string]struct{}{
	"british":             {},
	"uk":                  {},
	"united kingdom":      {},
	"great britain":       {},
	"gb":                  {},
	"english":             {},
	"scottish":            {},
	"welsh":               {},
	"northern irish":      {},
	"irish":               {},
	"ireland":             {},
	"republic of ireland": {},
	"british citizen":     {},
	"irish citizen":       {},
}

// IsExemptNationality reports whether nationality grants an unrestricted
// right to work without an online check.
func IsExemptNationality(nationality string) bool {
	_, ok := exemptNationalities[rtwstrings.NormalizeKey(nationality)]
	return ok
}

// RequiresOnlineVerification is an advisory hint: true when the document is
// outside the citizenship group and the nationality is known and not exempt.
// An unknown document type yields false because there is nothing to advise on.
func RequiresOnlineVerification(nationality string, documentType DocumentType) bool {
	if !documentType.IsValid() || documentType.IsCitizenship() {
		return false
	}
	if rtwstrings.NormalizeKey(nationality) == "" {
		return false
	}
	return !IsExemptNationality(nationality)
}

// NextCheckDate schedules the repeat check. Citizenship documents never need
// one. A known expiry wins; otherwise the per-type default interval applies
// from the check date.
func NextCheckDate(documentType DocumentType, expiry *Date, checkDate Date) *Date {
	r, ok := rules[documentType]
	if !ok || r.group == GroupCitizenship {
		return nil
	}
	if expiry != nil && !expiry.IsZero() {
		d := *expiry
		return &d
	}
	if r.nextCheckDays == 0 && r.nextCheckMonths == 0 {
		return nil
	}
	d := checkDate.AddDays(r.nextCheckDays).AddMonths(r.nextCheckMonths)
	return &d
}
