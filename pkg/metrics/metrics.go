package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "merchant_verify"

var (
	// Request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Domain metrics
	RiskAssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_assessments_total",
			Help:      "Risk assessments computed, by resulting level",
		},
		[]string{"level"},
	)

	VerificationFlagsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_flags_total",
			Help:      "Verification flag lifecycle events",
		},
		[]string{"event"},
	)

	TransactionAnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_analyses_total",
			Help:      "Transaction pattern analyses, by outcome",
		},
		[]string{"outcome"},
	)

	ScoringJobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_job_merchants_total",
			Help:      "Merchants processed by the pending scoring job",
		},
		[]string{"result"},
	)
)

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}).Inc()
	HTTPRequestDuration.With(prometheus.Labels{
		"method": method,
		"path":   path,
	}).Observe(elapsed.Seconds())
}

// RecordRiskAssessment increments the assessment counter for level
func RecordRiskAssessment(level string) {
	RiskAssessmentsTotal.WithLabelValues(level).Inc()
}

// RecordFlagEvent increments the flag counter for event (raised, resolved, dismissed)
func RecordFlagEvent(event string) {
	VerificationFlagsTotal.WithLabelValues(event).Inc()
}

// RecordAnalysis increments the analysis counter for outcome (ok, empty, error)
func RecordAnalysis(outcome string) {
	TransactionAnalysesTotal.WithLabelValues(outcome).Inc()
}

// RecordScoringJob increments the scoring job counter for result (scored, skipped, failed)
func RecordScoringJob(result string) {
	ScoringJobRuns.WithLabelValues(result).Inc()
}

// Handler returns the HTTP handler exposing the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
