package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the RTW module. A nil *Metrics is valid.
type Metrics struct {
	// Verification outcomes by result: valid, invalid, unavailable, circuit_open, bad_format
	VerificationOutcome *prometheus.CounterVec
	VerificationLatency prometheus.Histogram
	// Upstream attempts including retries, by HTTP status class or "transport"
	VerificationAttempts *prometheus.CounterVec

	// Check writes by document type and status; blocked checks use status "blocked"
	ChecksRecorded *prometheus.CounterVec
	// Eligibility evaluations by document type and whether they can proceed
	EligibilityEvaluations *prometheus.CounterVec

	EvidenceUploads *prometheus.CounterVec
}

// New registers metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics on reg; tests pass a fresh prometheus.NewRegistry().
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		VerificationOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rtwgate_share_code_verifications_total",
			Help: "Share-code verification outcomes by result",
		}, []string{"result"}),

		VerificationLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rtwgate_share_code_verification_duration_seconds",
			Help:    "Duration of a share-code verification including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),

		VerificationAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rtwgate_home_office_attempts_total",
			Help: "Outbound calls to the Home Office verification endpoint by response class",
		}, []string{"class"}),

		ChecksRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rtwgate_checks_total",
			Help: "RTW check submissions by document type and resulting status",
		}, []string{"document_type", "status"}),

		EligibilityEvaluations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rtwgate_eligibility_evaluations_total",
			Help: "Eligibility evaluations by document type and proceedability",
		}, []string{"document_type", "can_proceed"}),

		EvidenceUploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rtwgate_evidence_uploads_total",
			Help: "Evidence uploads by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncVerificationOutcome(result string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveVerificationLatency(d time.Duration) {
	if m != nil {
		m.VerificationLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncVerificationAttempt(class string) {
	if m != nil {
		m.VerificationAttempts.WithLabelValues(class).Inc()
	}
}

func (m *Metrics) IncCheck(documentType, status string) {
	if m != nil {
		m.ChecksRecorded.WithLabelValues(documentType, status).Inc()
	}
}

func (m *Metrics) IncEvaluation(documentType string, canProceed bool) {
	if m != nil {
		label := "false"
		if canProceed {
			label = "true"
		}
		m.EligibilityEvaluations.WithLabelValues(documentType, label).Inc()
	}
}

func (m *Metrics) IncEvidenceUpload(result string) {
	if m != nil {
		m.EvidenceUploads.WithLabelValues(result).Inc()
	}
}
