//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/models"
	"rtwgate/internal/rtw/store"
	"rtwgate/internal/rtw/verification"
	id "rtwgate/pkg/domain"
	"rtwgate/pkg/platform/audit"
	auditpg "rtwgate/pkg/platform/audit/store/postgres"
	"rtwgate/pkg/platform/sentinel"
	txcontext "rtwgate/pkg/platform/tx"
	"rtwgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background()))
}

func (s *PostgresStoreSuite) fullCheck(tenant id.TenantID) *models.Check {
	employee := id.EmployeeID(uuid.New())
	expiry := eligibility.MustParseDate("2027-08-31")
	next := eligibility.MustParseDate("2026-03-01")
	verifiedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.Check{
		ID:                  id.NewCheckID(),
		TenantID:            tenant,
		EmployeeID:          &employee,
		StaffName:           "Amina Okafor",
		DocumentType:        eligibility.DocShareCode,
		DocumentNumber:      "HO-998877",
		Nationality:         "Nigerian",
		VisaType:            "Skilled Worker",
		VisaExpiry:          &expiry,
		ShareCode:           "W12345678",
		ShareCodeVerified:   true,
		ShareCodeVerifiedAt: &verifiedAt,
		VerificationMethod:  models.MethodOnline,
		VerificationDetails: &verification.Details{
			Name:              "Amina Okafor",
			ImmigrationStatus: "Skilled Worker visa",
			RightToWork:       "limited",
			ExpiryDate:        &expiry,
		},
		CheckDate:     eligibility.MustParseDate("2025-03-01"),
		NextCheckDate: &next,
		EvidencePath:  "rtw-documents/abc.pdf",
		Notes:         "seen in person",
		Status:        models.StatusVerified,
		Warnings:      []string{},
		CreatedBy:     id.UserID(uuid.New()),
		CreatedAt:     time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC),
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	check := s.fullCheck(id.TenantID(uuid.New()))

	s.Require().NoError(s.store.Insert(ctx, check))
	got, err := s.store.FindByID(ctx, check.TenantID, check.ID)

	s.Require().NoError(err)
	s.Equal(check, got)
}

func (s *PostgresStoreSuite) TestDuplicateIDConflicts() {
	ctx := context.Background()
	check := s.fullCheck(id.TenantID(uuid.New()))
	s.Require().NoError(s.store.Insert(ctx, check))

	s.ErrorIs(s.store.Insert(ctx, check), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestTenantIsolation() {
	ctx := context.Background()
	check := s.fullCheck(id.TenantID(uuid.New()))
	s.Require().NoError(s.store.Insert(ctx, check))

	_, err := s.store.FindByID(ctx, id.TenantID(uuid.New()), check.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	list, err := s.store.ListByTenant(ctx, id.TenantID(uuid.New()))
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *PostgresStoreSuite) TestRollbackDiscardsCheckAndOutboxRow() {
	ctx := context.Background()
	check := s.fullCheck(id.TenantID(uuid.New()))
	outbox := auditpg.New(s.pg.DB)

	err := txcontext.NewRunner(s.pg.DB).RunInTx(ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Insert(ctx, check))
		s.Require().NoError(outbox.Append(ctx, audit.Event{
			TenantID:  check.TenantID,
			Action:    string(audit.EventRTWCheckRecorded),
			Timestamp: check.CreatedAt,
		}))
		return sentinel.ErrUnavailable
	})
	s.ErrorIs(err, sentinel.ErrUnavailable)

	_, err = s.store.FindByID(ctx, check.TenantID, check.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	pending, err := outbox.FetchPending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *PostgresStoreSuite) TestDueAndFollowupQueries() {
	ctx := context.Background()
	tenant := id.TenantID(uuid.New())

	vignette := s.fullCheck(tenant)
	vignette.DocumentType = eligibility.DocPassportNonUK
	vignette.RequiresFollowup = true
	vignette.FollowupReason = "vignette"
	soon := eligibility.MustParseDate("2025-03-29")
	vignette.NextCheckDate = &soon

	citizen := s.fullCheck(tenant)
	citizen.DocumentType = eligibility.DocPassportUK
	citizen.NextCheckDate = nil

	s.Require().NoError(s.store.Insert(ctx, vignette))
	s.Require().NoError(s.store.Insert(ctx, citizen))
	s.Require().NoError(s.store.Insert(ctx, s.fullCheck(tenant)))

	due, err := s.store.ListDueBefore(ctx, tenant, eligibility.MustParseDate("2025-04-01"))
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Equal(vignette.ID, due[0].ID)

	followups, err := s.store.ListRequiringFollowup(ctx, tenant)
	s.Require().NoError(err)
	s.Require().Len(followups, 1)
	s.Equal("vignette", followups[0].FollowupReason)

	bySubject, err := s.store.ListBySubject(ctx, tenant, *citizen.EmployeeID)
	s.Require().NoError(err)
	s.Len(bySubject, 1)

	byType, err := s.store.ListByDocumentType(ctx, tenant, eligibility.DocShareCode)
	s.Require().NoError(err)
	s.Len(byType, 1)
}
