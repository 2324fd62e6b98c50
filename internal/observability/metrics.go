package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the report pipeline.
type Metrics struct {
	RowsLoaded         prometheus.Counter
	DateParseFailures  prometheus.Counter
	TimeSkipped        prometheus.Counter
	AgeGroupsDiscarded *prometheus.CounterVec // labels: reason={blank,filtered}
	UnrecognizedLabels prometheus.Gauge
	SinkErrors         *prometheus.CounterVec // labels: sink
	PipelineRunning    prometheus.Gauge
	ReportsGenerated   prometheus.Counter
	FetchDuration      prometheus.Histogram
	RunDuration        prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_report",
			Name:      "rows_loaded_total",
			Help:      "Total dataset rows loaded from the source.",
		}),
		DateParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_report",
			Name:      "date_parse_failures_total",
			Help:      "Rows whose occurrence date did not parse.",
		}),
		TimeSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_report",
			Name:      "time_skipped_total",
			Help:      "Rows excluded from the time-of-day aggregation.",
		}),
		AgeGroupsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_report",
			Name:      "age_groups_discarded_total",
			Help:      "Age-group rows discarded by reason.",
		}, []string{"reason"}),
		UnrecognizedLabels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incident_report",
			Name:      "unrecognized_age_group_labels",
			Help:      "Distinct age-group labels that survived filtering but are not valid brackets.",
		}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_report",
			Name:      "sink_errors_total",
			Help:      "Report sink failures by sink.",
		}, []string{"sink"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incident_report",
			Name:      "pipeline_running",
			Help:      "1 while a report run is in progress.",
		}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_report",
			Name:      "reports_generated_total",
			Help:      "Completed report runs.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_report",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the dataset download and parse.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_report",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-transform-load run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}

	prometheus.MustRegister(
		m.RowsLoaded,
		m.DateParseFailures,
		m.TimeSkipped,
		m.AgeGroupsDiscarded,
		m.UnrecognizedLabels,
		m.SinkErrors,
		m.PipelineRunning,
		m.ReportsGenerated,
		m.FetchDuration,
		m.RunDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsLoaded:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_report", Name: "rows_loaded_total"}),
		DateParseFailures:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_report", Name: "date_parse_failures_total"}),
		TimeSkipped:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_report", Name: "time_skipped_total"}),
		AgeGroupsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "incident_report", Name: "age_groups_discarded_total"}, []string{"reason"}),
		UnrecognizedLabels: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "incident_report", Name: "unrecognized_age_group_labels"}),
		SinkErrors:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "incident_report", Name: "sink_errors_total"}, []string{"sink"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "incident_report", Name: "pipeline_running"}),
		ReportsGenerated:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_report", Name: "reports_generated_total"}),
		FetchDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "incident_report", Name: "fetch_duration_seconds"}),
		RunDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "incident_report", Name: "run_duration_seconds"}),
	}
}
