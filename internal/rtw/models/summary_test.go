package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rtwgate/internal/rtw/eligibility"
)

func datePtr(s string) *eligibility.Date {
	d := eligibility.MustParseDate(s)
	return &d
}

func TestSummarize(t *testing.T) {
	today := eligibility.MustParseDate("2025-03-01")
	checks := []*Check{
		{DocumentType: eligibility.DocPassportUK, Status: StatusVerified},
		{DocumentType: eligibility.DocShareCode, Status: StatusVerified, NextCheckDate: datePtr("2025-03-20")},
		{DocumentType: eligibility.DocPassportNonUK, Status: StatusPendingVerification, RequiresFollowup: true, NextCheckDate: datePtr("2025-02-27")},
		{DocumentType: eligibility.DocFrontierWorkerPermit, Status: StatusPendingVerification, RequiresFollowup: true, NextCheckDate: datePtr("2025-09-01")},
		{DocumentType: eligibility.DocBiometricResidencePermit, Status: StatusPendingVerification, NextCheckDate: datePtr("2025-03-01")},
	}

	got := Summarize(checks, today)

	assert.Equal(t, Summary{
		TotalChecks:      5,
		Verified:         2,
		Pending:          3,
		ExpiringSoon:     1,
		Expired:          1,
		RequiresFollowup: 1,
		RetiredDocuments: 1,
	}, got)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, eligibility.MustParseDate("2025-03-01")))
}
