// Package metrics records build measurements.
package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "tome"

var _ ports.MetricsRecorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements ports.MetricsRecorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	documents     *prom.CounterVec
	cacheLookups  *prom.CounterVec
	diagnostics   *prom.CounterVec
	buildOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
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
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Processed documents by outcome",
		}, []string{"outcome"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Build cache lookups by result",
		}, []string{"result"}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Warnings and errors reported by builds",
		}, []string{"severity"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.documents, pr.cacheLookups, pr.diagnostics, pr.buildOutcome)
	return pr
}

// Registry returns the registry holding the metrics.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocument(outcome string) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(hit bool) {
	if p == nil || p.cacheLookups == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheLookups.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncDiagnostic(severity string) {
	if p == nil || p.diagnostics == nil {
		return
	}
	p.diagnostics.WithLabelValues(severity).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

// Export writes the registry to path in the Prometheus text format, suitable for
// the node exporter textfile collector.
func (p *PrometheusRecorder) Export(path string) error {
	if p == nil || path == "" {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics file"), "path", path)
	}
	return nil
}
