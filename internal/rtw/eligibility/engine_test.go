package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return New(DefaultCutoffs())
}

func TestValidateDocumentType_BRPCutoffBoundary(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name        string
		on          string
		wantProceed bool
		wantErrors  int
	}{
		{name: "day before cutoff", on: "2024-10-30", wantProceed: true, wantErrors: 0},
		{name: "cutoff day itself", on: "2024-10-31", wantProceed: false, wantErrors: 2},
		{name: "day after cutoff", on: "2024-11-01", wantProceed: false, wantErrors: 2},
		{name: "day before rejection", on: "2025-05-31", wantProceed: false, wantErrors: 2},
		{name: "rejection day", on: "2025-06-01", wantProceed: false, wantErrors: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := engine.ValidateDocumentType("biometric_residence_permit", MustParseDate(tt.on))
			require.True(t, ok)
			assert.Equal(t, tt.wantProceed, v.CanProceed)
			assert.Len(t, v.Errors, tt.wantErrors)
			if tt.wantProceed {
				assert.Empty(t, v.RecommendedAction)
			} else {
				assert.Equal(t, ActionBRPUseShareCode, v.RecommendedAction)
				assert.Contains(t, v.Errors[0], "31 October 2024")
			}
		})
	}
}

func TestValidateDocumentType_BRPBeforeCutoffWarns(t *testing.T) {
	v, ok := newTestEngine().ValidateDocumentType("biometric_residence_permit", NewDate(2024, 9, 1))
	require.True(t, ok)
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "31 October 2024")
}

func TestValidateDocumentType_Groups(t *testing.T) {
	engine := newTestEngine()
	on := NewDate(2025, 3, 10)

	t.Run("citizenship documents are clean", func(t *testing.T) {
		for _, dt := range []DocumentType{DocPassportUK, DocPassportIrish, DocBirthCertificateNINumber} {
			v, ok := engine.ValidateDocumentType(string(dt), on)
			require.True(t, ok)
			assert.True(t, v.CanProceed, dt)
			assert.Empty(t, v.Errors, dt)
			assert.Empty(t, v.Warnings, dt)
			assert.False(t, v.RequiresFollowup, dt)
		}
	})

	t.Run("share code warns until verified", func(t *testing.T) {
		v := engine.Evaluate(Request{DocumentType: DocShareCode, On: on})
		assert.True(t, v.CanProceed)
		assert.Empty(t, v.Errors)
		assert.Equal(t, []string{MsgShareCodeVerificationRequired}, v.Warnings)
		assert.True(t, v.RequiresOnlineCheck)

		verified := engine.Evaluate(Request{DocumentType: DocShareCode, On: on, OnlineVerified: true})
		assert.Empty(t, verified.Warnings)
	})

	t.Run("transitional documents need follow-up", func(t *testing.T) {
		for _, dt := range []DocumentType{DocPassportNonUK, DocFrontierWorkerPermit, DocCertificateOfApplication} {
			v := engine.Evaluate(Request{DocumentType: dt, On: on})
			assert.True(t, v.CanProceed, dt)
			assert.Empty(t, v.Errors, dt)
			assert.NotEmpty(t, v.Warnings, dt)
			assert.True(t, v.RequiresFollowup, dt)
			assert.NotEmpty(t, v.FollowupReason, dt)
			assert.Empty(t, v.RecommendedAction, dt)
		}
	})

	t.Run("other document carries guidance", func(t *testing.T) {
		v := engine.Evaluate(Request{DocumentType: DocOther, On: on})
		assert.True(t, v.CanProceed)
		assert.Equal(t, []string{MsgOtherDocument}, v.Warnings)
	})
}

func TestValidateDocumentType_UnknownHasNoVerdict(t *testing.T) {
	engine := newTestEngine()
	for _, raw := range []string{"", "  ", "driving_licence", "BRP"} {
		_, ok := engine.ValidateDocumentType(raw, NewDate(2025, 1, 1))
		assert.False(t, ok, raw)
	}
}

func TestValidateDocumentType_NormalisesInput(t *testing.T) {
	v, ok := newTestEngine().ValidateDocumentType("  Passport_UK ", NewDate(2025, 1, 1))
	require.True(t, ok)
	assert.True(t, v.CanProceed)
}

func TestEvaluate_EmptySlicesNotNil(t *testing.T) {
	v := newTestEngine().Evaluate(Request{DocumentType: DocPassportUK, On: NewDate(2025, 1, 1)})
	assert.NotNil(t, v.Errors)
	assert.NotNil(t, v.Warnings)
}

func TestParseCutoffs(t *testing.T) {
	c, err := ParseCutoffs("2024-10-31", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, DefaultCutoffs(), c)

	_, err = ParseCutoffs("2025-06-01", "2024-10-31")
	assert.Error(t, err)

	_, err = ParseCutoffs("31/10/2024", "2025-06-01")
	assert.Error(t, err)
}

func TestEngine_InjectedCutoffs(t *testing.T) {
	engine := New(Cutoffs{BRPInvalid: NewDate(2030, 1, 1), BRPRejection: NewDate(2031, 1, 1)})
	v := engine.Evaluate(Request{DocumentType: DocBiometricResidencePermit, On: NewDate(2029, 12, 31)})
	assert.True(t, v.CanProceed)

	v = engine.Evaluate(Request{DocumentType: DocBiometricResidencePermit, On: NewDate(2030, 1, 1)})
	assert.False(t, v.CanProceed)
	assert.Contains(t, v.Errors[0], "1 January 2030")
}

func TestRequiresOnlineVerification(t *testing.T) {
	tests := []struct {
		nationality string
		doc         DocumentType
		want        bool
	}{
		{"French", DocShareCode, true},
		{"British", DocPassportUK, false},
		{"British", DocShareCode, false},
		{"  irish ", DocPassportNonUK, false},
		{"Ukrainian", DocPassportNonUK, true},
		{"", DocShareCode, false},
		{"French", DocPassportIrish, false},
		{"Indian", DocBiometricResidencePermit, true},
		{"Indian", DocumentType("unknown"), false},
	}
	for _, tt := range tests {
		t.Run(tt.nationality+"/"+string(tt.doc), func(t *testing.T) {
			assert.Equal(t, tt.want, RequiresOnlineVerification(tt.nationality, tt.doc))
		})
	}
}

func TestNextCheckDate(t *testing.T) {
	checkDate := NewDate(2025, 1, 15)
	expiry := NewDate(2026, 3, 1)

	assert.Nil(t, NextCheckDate(DocPassportUK, &expiry, checkDate))
	assert.Nil(t, NextCheckDate(DocumentType("nope"), nil, checkDate))

	got := NextCheckDate(DocPassportNonUK, &expiry, checkDate)
	require.NotNil(t, got)
	assert.Equal(t, expiry, *got)

	got = NextCheckDate(DocPassportNonUK, nil, checkDate)
	require.NotNil(t, got)
	assert.Equal(t, NewDate(2025, 2, 12), *got)

	got = NextCheckDate(DocShareCode, nil, checkDate)
	require.NotNil(t, got)
	assert.Equal(t, NewDate(2026, 1, 15), *got)

	got = NextCheckDate(DocCertificateOfApplication, &Date{}, checkDate)
	require.NotNil(t, got)
	assert.Equal(t, NewDate(2025, 7, 15), *got)
}

func TestDocumentType_ExpiryRequired(t *testing.T) {
	assert.False(t, DocPassportUK.ExpiryRequired())
	assert.False(t, DocShareCode.ExpiryRequired())
	assert.False(t, DocCertificateOfApplication.ExpiryRequired())
	assert.True(t, DocPassportNonUK.ExpiryRequired())
	assert.True(t, DocFrontierWorkerPermit.ExpiryRequired())
	assert.True(t, DocBiometricResidencePermit.ExpiryRequired())
	assert.True(t, DocOther.ExpiryRequired())
	assert.Len(t, DocumentTypes(), 9)
}
