package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rtwgate/internal/rtw/eligibility"
	"rtwgate/internal/rtw/evidence"
	"rtwgate/internal/rtw/models"
	"rtwgate/internal/rtw/service"
	"rtwgate/internal/rtw/service/mocks"
	"rtwgate/internal/rtw/store"
	"rtwgate/internal/rtw/verification"
	"rtwgate/pkg/platform/audit/publishers/compliance"
	auditmemory "rtwgate/pkg/platform/audit/store/memory"
	"rtwgate/pkg/platform/middleware/requesttime"
	"rtwgate/pkg/testutil"
)

// =============================================================================
// Handler Suite
// =============================================================================
// Drives the chi router against a real service with in-memory stores, so the
// status codes and JSON shapes clients depend on are checked end to end.

type HandlerSuite struct {
	suite.Suite
	router   http.Handler
	evidence *evidence.InMemoryStore
	tenantID string
	userID   string
	now      time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *HandlerSuite) newRouter(checks service.CheckStore) http.Handler {
	clock := func() time.Time { return s.now }
	svc, err := service.New(
		eligibility.New(eligibility.DefaultCutoffs()),
		checks,
		verification.StubVerifier{Now: clock},
		verification.NewInMemoryOutcomeStore().WithClock(clock),
		service.WithLogger(discardLogger()),
		service.WithAuditPublisher(compliance.New(auditmemory.NewInMemoryStore())),
		service.WithLocation(time.UTC),
	)
	s.Require().NoError(err)

	uploader := evidence.NewUploader(s.evidence, evidence.WithMaxBytes(64))
	r := chi.NewRouter()
	r.Use(requesttime.MiddlewareWithClock(clock))
	New(svc, uploader, discardLogger()).Register(r)
	return r
}

func (s *HandlerSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.evidence = evidence.NewInMemoryStore()
	s.tenantID = uuid.NewString()
	s.userID = uuid.NewString()
	s.router = s.newRouter(store.NewInMemoryStore())
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, testutil.WithAuth(req, s.tenantID, s.userID))
}

func (s *HandlerSuite) addCheck(body map[string]any) *httptest.ResponseRecorder {
	return s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/checks", body))
}

func (s *HandlerSuite) TestEligibility() {
	s.Run("retired document after cutoff cannot proceed", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/eligibility", map[string]any{
			"document_type": "biometric_residence_permit",
			"nationality":   "Nigerian",
			"date":          "2024-11-01",
		}))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.EligibilityResult](s.T(), rr)
		s.False(resp.CanProceed)
		s.NotEmpty(resp.Errors)
		s.NotEmpty(resp.RecommendedAction)
		s.True(resp.RequiresOnlineVerification)
	})

	s.Run("citizenship document proceeds", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/eligibility", map[string]any{
			"document_type": "passport_uk",
			"nationality":   "British",
		}))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.EligibilityResult](s.T(), rr)
		s.True(resp.CanProceed)
		s.Empty(resp.Errors)
		s.False(resp.RequiresOnlineVerification)
	})

	s.Run("missing document type is a bad request", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/eligibility", map[string]any{}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unknown document type is a validation error", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/eligibility", map[string]any{
			"document_type": "library_card",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("malformed date is a bad request", func() {
		rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/eligibility", map[string]any{
			"document_type": "passport_uk",
			"date":          "01/11/2024",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestVerifyThenAddShareCodeCheck() {
	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/share-codes/verify", map[string]any{
		"share_code":    "W12-345-678",
		"date_of_birth": "1990-05-15",
	}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	outcome := testutil.UnmarshalResponse[verification.Outcome](s.T(), rr)
	s.Require().True(outcome.Valid)
	s.Require().False(outcome.ID.IsNil())

	rr = s.addCheck(map[string]any{
		"staff_name":      "Amara Okafor",
		"document_type":   "share_code",
		"share_code":      "W12345678",
		"check_date":      "2025-03-01",
		"verification_id": outcome.ID.String(),
	})

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	result := testutil.UnmarshalResponse[models.AddCheckResult](s.T(), rr)
	s.Require().NotNil(result.Check)
	s.Equal(models.StatusVerified, result.Check.Status)
	s.True(result.Check.ShareCodeVerified)
}

func (s *HandlerSuite) TestVerifyShareCodeBadFormatIsInvalidOutcome() {
	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/share-codes/verify", map[string]any{
		"share_code":    "W123",
		"date_of_birth": "1990-05-15",
	}))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	outcome := testutil.UnmarshalResponse[verification.Outcome](s.T(), rr)
	s.False(outcome.Valid)
	s.Equal(verification.MsgInvalidFormat, outcome.Error)
}

func (s *HandlerSuite) TestVerifyRouteMiddleware() {
	svc, err := service.New(
		eligibility.New(eligibility.DefaultCutoffs()),
		store.NewInMemoryStore(),
		verification.StubVerifier{},
		verification.NewInMemoryOutcomeStore(),
	)
	s.Require().NoError(err)
	reject := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	r := chi.NewRouter()
	New(svc, evidence.NewUploader(s.evidence), discardLogger(), WithVerifyMiddleware(reject)).Register(r)
	s.router = r

	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/share-codes/verify", map[string]any{
		"share_code":    "W12345678",
		"date_of_birth": "1990-05-15",
	}))
	testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)

	rr = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/eligibility", map[string]any{
		"document_type": "passport_uk",
	}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
}

func (s *HandlerSuite) TestAddCheck() {
	s.Run("recorded check returns 201", func() {
		rr := s.addCheck(map[string]any{
			"employee_id":   uuid.NewString(),
			"staff_name":    "Jonas Berg",
			"document_type": "passport_uk",
			"check_date":    "2025-03-01",
		})

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		result := testutil.UnmarshalResponse[models.AddCheckResult](s.T(), rr)
		s.Require().NotNil(result.Check)
		s.Equal(models.StatusVerified, result.Check.Status)
		s.Empty(result.Validation.Errors)
	})

	s.Run("blocked document returns 422 with null check", func() {
		rr := s.addCheck(map[string]any{
			"staff_name":    "Jonas Berg",
			"document_type": "biometric_residence_permit",
			"check_date":    "2025-03-01",
			"visa_expiry":   "2026-01-31",
		})

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		testutil.AssertJSONContains(s.T(), rr, "check", nil)
	})

	s.Run("missing fields return 422 with every error", func() {
		rr := s.addCheck(map[string]any{"document_type": "passport_non_uk"})

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		result := testutil.UnmarshalResponse[models.AddCheckResult](s.T(), rr)
		s.Nil(result.Check)
		s.Contains(result.Validation.Errors, service.MsgStaffNameRequired)
		s.Contains(result.Validation.Errors, service.MsgCheckDateRequired)
		s.Contains(result.Validation.Errors, service.MsgVisaExpiryRequired)
	})

	s.Run("malformed employee id is a bad request", func() {
		rr := s.addCheck(map[string]any{
			"employee_id":   "emp-1",
			"staff_name":    "Jonas Berg",
			"document_type": "passport_uk",
			"check_date":    "2025-03-01",
		})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unparseable body is a bad request", func() {
		req := httptest.NewRequest(http.MethodPost, "/rtw/checks", bytes.NewBufferString("{"))
		rr := s.do(req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("missing auth context is unauthorized", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/rtw/checks", map[string]any{
			"staff_name":    "Jonas Berg",
			"document_type": "passport_uk",
			"check_date":    "2025-03-01",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *HandlerSuite) TestReadSide() {
	employeeID := uuid.NewString()
	rr := s.addCheck(map[string]any{
		"employee_id":   employeeID,
		"staff_name":    "Amara Okafor",
		"document_type": "passport_non_uk",
		"check_date":    "2025-03-01",
		"visa_expiry":   "2025-04-15",
	})
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[models.AddCheckResult](s.T(), rr).Check
	s.Require().NotNil(created)

	s.Run("get by id", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/"+created.ID.String()))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		got := testutil.UnmarshalResponse[models.Check](s.T(), rr)
		s.Equal(created.ID, got.ID)
		s.Equal("Amara Okafor", got.StaffName)
	})

	s.Run("unknown id is not found", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/"+uuid.NewString()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed id is a bad request", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/not-a-uuid"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("other tenants cannot read the check", func() {
		req := testutil.WithAuth(
			testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/"+created.ID.String()),
			uuid.NewString(), s.userID,
		)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})

	s.Run("list for subject", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks?employee_id="+employeeID))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[checksResponse](s.T(), rr)
		s.Len(resp.Checks, 1)
	})

	s.Run("list for subject requires employee id", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("due within window", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/due?within_days=60"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[checksResponse](s.T(), rr)
		s.Require().Len(resp.Checks, 1)
		s.Equal(created.ID, resp.Checks[0].ID)
	})

	s.Run("due outside window is empty array", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/due?within_days=7"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`{"checks":[]}`, rr.Body.String())
	})

	s.Run("non-integer window is a bad request", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/due?within_days=soon"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("negative window is a validation error", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/due?within_days=-1"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("followups", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/followups"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[checksResponse](s.T(), rr)
		s.Len(resp.Checks, 1)
	})

	s.Run("retired documents", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/checks/retired-documents"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`{"checks":[]}`, rr.Body.String())
	})

	s.Run("summary", func() {
		rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/rtw/summary"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.Summary](s.T(), rr)
		s.Equal(1, resp.TotalChecks)
		s.Equal(1, resp.Pending)
		s.Equal(1, resp.RequiresFollowup)
	})
}

func (s *HandlerSuite) TestUploadEvidence() {
	s.Run("stores the file and returns its path", func() {
		rr := s.do(testutil.NewMultipartRequest(s.T(), "/rtw/evidence", "file", "passport.pdf", []byte("%PDF-1.7")))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[evidenceResponse](s.T(), rr)
		s.Regexp(`^rtw-documents/[0-9a-f-]{36}\.pdf$`, resp.Path)
		_, err := s.evidence.Get(s.T().Context(), resp.Path)
		s.NoError(err)
	})

	s.Run("unsupported type is a validation error", func() {
		rr := s.do(testutil.NewMultipartRequest(s.T(), "/rtw/evidence", "file", "passport.exe", []byte("MZ")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("oversize file is a validation error", func() {
		rr := s.do(testutil.NewMultipartRequest(s.T(), "/rtw/evidence", "file", "scan.png", make([]byte, 65)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "validation_error")
	})

	s.Run("missing file field is a bad request", func() {
		rr := s.do(testutil.NewMultipartRequest(s.T(), "/rtw/evidence", "document", "scan.png", []byte("png")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

// =============================================================================
// Persistence failures
// =============================================================================
// Justification: a storage fault must surface as 500 internal_error without
// leaking the cause, distinct from the 422 business rejection.

func (s *HandlerSuite) TestAddCheckPersistenceFailureIs500() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	checks := mocks.NewMockCheckStore(ctrl)
	checks.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	s.router = s.newRouter(checks)

	rr := s.addCheck(map[string]any{
		"staff_name":    "Jonas Berg",
		"document_type": "passport_uk",
		"check_date":    "2025-03-01",
	})

	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	body := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("internal_error", body["error"])
	s.NotContains(rr.Body.String(), "connection reset")
}
