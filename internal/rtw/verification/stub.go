package verification

import (
	"context"
	"fmt"
	"time"

	"rtwgate/internal/rtw/eligibility"
)

// StubVerifier stands in for the Home Office service in development and tests.
// Results depend only on the normalised share code:
//
//	X........  rejected ("Share code not found or expired")
//	E........  service unavailable
//	anything   valid, limited right to work, expiring two years after now
type StubVerifier struct {
	Latency time.Duration
	Now     func() time.Time
}

func (s StubVerifier) Verify(ctx context.Context, shareCode string, dateOfBirth eligibility.Date) Outcome {
	if s.Latency > 0 {
		select {
		case <-ctx.Done():
			return Unavailable()
		case <-time.After(s.Latency):
		}
	}

	code, _ := NormalizeShareCode(shareCode)
	switch {
	case code == "":
		return Invalid("")
	case code[0] == 'X':
		return Invalid("Share code not found or expired")
	case code[0] == 'E':
		return Unavailable()
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	verifiedAt := now().UTC()
	expiry := eligibility.DateOf(verifiedAt, nil).AddMonths(24)
	return Outcome{
		Valid:      true,
		VerifiedAt: &verifiedAt,
		Details: &Details{
			Name:              "Verified Worker",
			ImmigrationStatus: "Skilled Worker visa",
			RightToWork:       "limited",
			ExpiryDate:        &expiry,
			ReferenceNumber:   fmt.Sprintf("HO-%s-%s", code[:3], dateOfBirth.String()),
		},
	}
}
