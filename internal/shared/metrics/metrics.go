package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure reasons recorded on ats_analysis_failed_total.
const (
	ReasonValidation = "validation"
	ReasonExtraction = "extraction"
	ReasonStorage    = "storage"
	ReasonInternal   = "internal"
)

var (
	registry = prometheus.NewRegistry()

	analysisStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ats_analysis_started_total",
		Help: "Total analyses started",
	})
	analysisCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ats_analysis_completed_total",
		Help: "Total analyses completed",
	})
	analysisFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ats_analysis_failed_total",
		Help: "Total analyses failed",
	}, []string{"reason"})
	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ats_analysis_duration_ms",
		Help:    "Analysis duration in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	overallScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ats_overall_score",
		Help:    "Distribution of overall ATS scores",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		analysisStarted,
		analysisCompleted,
		analysisFailed,
		analysisDuration,
		overallScore,
	)
}

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStarted.Inc()
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompleted.Inc()
}

// IncAnalysisFailed increments the failed counter for reason.
func IncAnalysisFailed(reason string) {
	analysisFailed.WithLabelValues(reason).Inc()
}

// ObserveAnalysisDuration records how long an analysis took.
func ObserveAnalysisDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	analysisDuration.Observe(float64(d.Microseconds()) / 1000.0)
}

// ObserveOverallScore records a produced overall score.
func ObserveOverallScore(score int) {
	overallScore.Observe(float64(score))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
