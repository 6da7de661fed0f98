package arsync

import (
	"ar-sync/feature/arsync/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricRunsTotal          = "ar_sync_runs_total"
	MetricRecordsTotal       = "ar_sync_records_total"
	MetricRunDurationSeconds = "ar_sync_run_duration_seconds"
	MetricLastSuccess        = "ar_sync_last_success_timestamp_seconds"
	MetricRunInProgress      = "ar_sync_run_in_progress"
)

// Metrics exports run outcomes to Prometheus.
type Metrics struct {
	runs        *prometheus.CounterVec
	records     *prometheus.CounterVec
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge
	inProgress  prometheus.Gauge
}

// NewMetrics creates the sync metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRunsTotal,
			Help: "Sync runs by final status.",
		}, []string{"status"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRecordsTotal,
			Help: "Records processed by action.",
		}, []string{"action"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRunDurationSeconds,
			Help:    "Wall time of a sync run.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastSuccess,
			Help: "Unix time of the last run that finished without error.",
		}),
		inProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricRunInProgress,
			Help: "1 while a sync run is executing.",
		}),
	}

	reg.MustRegister(m.runs, m.records, m.duration, m.lastSuccess, m.inProgress)
	return m
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.inProgress.Set(1)
}

func (m *Metrics) observe(report *models.Report, runErr error) {
	if m == nil {
		return
	}
	m.inProgress.Set(0)

	status := runStatus(runErr)
	m.runs.WithLabelValues(status).Inc()
	m.duration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	if status == models.RunStatusSucceeded {
		m.lastSuccess.Set(float64(report.FinishedAt.Unix()))
	}

	o := report.Outcome
	m.records.WithLabelValues(string(models.ActionUpdate)).Add(float64(o.Updated))
	m.records.WithLabelValues(string(models.ActionCreate)).Add(float64(o.Created))
	m.records.WithLabelValues(string(models.ActionSkip)).Add(float64(o.NotFound))
	m.records.WithLabelValues(string(models.ActionError)).Add(float64(o.Errors))
}
