package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/resume-classifier/internal/core/domain"
)

// PipelineMetrics records classification outcomes. It satisfies ports.OutcomeObserver.
type PipelineMetrics struct {
	service string

	classifyTotal    *prometheus.CounterVec
	failureTotal     *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	extractedUnits   *prometheus.HistogramVec
	warningTotal     *prometheus.CounterVec
}

func NewPipelineMetrics(service string, registerer prometheus.Registerer) *PipelineMetrics {
	classifyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "classify_total",
			Help:      "Total classification requests by final status and predicted category.",
		},
		[]string{"service", "status", "category"},
	)
	failureTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "failures_total",
			Help:      "Failed classification requests by failure kind.",
		},
		[]string{"service", "kind"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Upload-to-category duration in seconds by file type and status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"service", "file_type", "status"},
	)
	extractedUnits := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "extracted_units",
			Help:      "Pages or paragraphs extracted per successful request.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100, 250},
		},
		[]string{"service", "file_type"},
	)
	warningTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "extraction_warnings_total",
			Help:      "Extraction warnings such as empty pages.",
		},
		[]string{"service", "file_type"},
	)

	if registerer != nil {
		registerer.MustRegister(classifyTotal, failureTotal, pipelineDuration, extractedUnits, warningTotal)
	}

	return &PipelineMetrics{
		service:          service,
		classifyTotal:    classifyTotal,
		failureTotal:     failureTotal,
		pipelineDuration: pipelineDuration,
		extractedUnits:   extractedUnits,
		warningTotal:     warningTotal,
	}
}

func (m *PipelineMetrics) ObserveOutcome(outcome domain.Outcome, duration time.Duration) {
	fileType := string(outcome.FileType)
	if fileType == "" {
		fileType = "unknown"
	}
	status := string(outcome.State)

	category := "none"
	if outcome.Prediction != nil {
		category = outcome.Prediction.Category
	}
	m.classifyTotal.WithLabelValues(m.service, status, category).Inc()
	m.pipelineDuration.WithLabelValues(m.service, fileType, status).Observe(duration.Seconds())

	if outcome.Failure != nil {
		m.failureTotal.WithLabelValues(m.service, string(outcome.Failure.Kind)).Inc()
		return
	}
	if outcome.Extracted != nil {
		m.extractedUnits.WithLabelValues(m.service, fileType).Observe(float64(outcome.Extracted.Units))
		if n := len(outcome.Extracted.Warnings); n > 0 {
			m.warningTotal.WithLabelValues(m.service, fileType).Add(float64(n))
		}
	}
}
