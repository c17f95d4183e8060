package observability

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of switchyard_stage_runs_total.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the stage counters of one run.
type Metrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	aborts   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchyard_stage_runs_total",
				Help: "Total number of executed stages by outcome",
			},
			[]string{"stage", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "switchyard_stage_duration_seconds",
				Help:    "Duration of executed stages",
				Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
			},
			[]string{"stage"},
		),
		aborts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchyard_aborts_total",
				Help: "Escalations stopped before the broadcast",
			},
			[]string{"reason"},
		),
	}
	m.registry.MustRegister(m.runs, m.duration, m.aborts)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) {
			outcome := OutcomeSuccess
			if e.ExitCode != 0 {
				outcome = OutcomeFailure
			}
			m.runs.WithLabelValues(string(e.Stage), outcome).Inc()
			m.duration.WithLabelValues(string(e.Stage)).Observe(e.Duration.Seconds())
		},
		OnAbort: func(_ context.Context, e *domain.AbortEvent) {
			m.aborts.WithLabelValues(e.Reason).Inc()
		},
	}
}

// WriteTextfile writes the registry in the text exposition format.
// The write is atomic, so a collector never reads a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to ensure metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
