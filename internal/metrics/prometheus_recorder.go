package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	validations   *prom.CounterVec
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	emittedFiles  *prom.CounterVec
	configIssues  *prom.GaugeVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		validations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Configuration validations by outcome",
		}, []string{"outcome"}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		emittedFiles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "emitted_files_total",
			Help:      "Engine configuration files written by target",
		}, []string{"target"}),
		configIssues: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "config_issues",
			Help:      "Issues found by the last validation or lint run",
		}, []string{"severity"}),
	}
	reg.MustRegister(pr.validations, pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.emittedFiles, pr.configIssues)
	return pr
}

func (p *PrometheusRecorder) IncValidation(outcome ValidationOutcome) {
	if p == nil {
		return
	}
	p.validations.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncEmittedFile(target string) {
	if p == nil {
		return
	}
	p.emittedFiles.WithLabelValues(target).Inc()
}

func (p *PrometheusRecorder) SetConfigIssues(severity string, n int) {
	if p == nil {
		return
	}
	p.configIssues.WithLabelValues(severity).Set(float64(n))
}
