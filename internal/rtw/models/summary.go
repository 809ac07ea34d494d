package models

import "rtwgate/internal/rtw/eligibility"

// ExpiringWindowDays bounds "expiring soon" in the summary.
const ExpiringWindowDays = 30

// Summarize counts checks as of today. A next check date in the past counts
// as expired; one within the window (and not today or earlier) as expiring.
func Summarize(checks []*Check, today eligibility.Date) Summary {
	horizon := today.AddDays(ExpiringWindowDays)
	var s Summary
	for _, c := range checks {
		s.TotalChecks++
		switch c.Status {
		case StatusVerified:
			s.Verified++
		case StatusPendingVerification:
			s.Pending++
		}
		if c.NextCheckDate != nil {
			switch {
			case c.NextCheckDate.Before(today):
				s.Expired++
			case c.NextCheckDate.After(today) && !c.NextCheckDate.After(horizon):
				s.ExpiringSoon++
			}
		}
		if c.RequiresFollowup && (c.NextCheckDate == nil || !c.NextCheckDate.Before(today)) {
			s.RequiresFollowup++
		}
		if c.IsRetiredDocument() {
			s.RetiredDocuments++
		}
	}
	return s
}
