// Package metrics records run statistics as Prometheus collectors fed by
// lifecycle hooks. Collectors live on a private registry; nothing is served
// over the network.
package metrics

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/aretw0/autocore/pkg/domain"
)

const namespace = "autocore"

// Collector groups every autocore metric.
type Collector struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	failures     prometheus.Counter
	overruns     prometheus.Counter
	tickDuration prometheus.Histogram
	published    *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	steps        *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of scheduler ticks",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_failures_total",
			Help:      "Ticks whose callback returned an error or panicked",
		}),
		overruns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_overruns_total",
			Help:      "Ticks that took longer than the tick interval",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Duration of tick callbacks",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .25, .5, 1},
		}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Events published on the bus",
		}, []string{"type"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safety_warnings_total",
			Help:      "Safety findings raised by the monitor",
		}, []string{"rule", "severity"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "State machine transition attempts",
		}, []string{"machine", "result"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_steps_total",
			Help:      "Workflow steps executed",
		}, []string{"workflow", "result"}),
	}
	c.registry.MustRegister(
		c.ticks, c.failures, c.overruns, c.tickDuration,
		c.published, c.warnings, c.transitions, c.steps,
	)
	return c
}

// Registry exposes the private registry, mainly for tests and exporters.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Hooks returns lifecycle hooks that record into c.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(_ context.Context, e *domain.TickEvent) {
			c.ticks.Inc()
			c.tickDuration.Observe(e.Duration.Seconds())
			if e.Err != nil {
				c.failures.Inc()
			}
			if e.Overrun {
				c.overruns.Inc()
			}
		},
		OnPublish: func(_ context.Context, e *domain.PublishEvent) {
			c.published.WithLabelValues(string(e.Event.Type())).Inc()
		},
		OnWarning: func(_ context.Context, e *domain.WarningEvent) {
			c.warnings.WithLabelValues(e.Rule, e.Severity).Inc()
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			c.transitions.WithLabelValues(e.Machine, result(e.Err)).Inc()
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			c.steps.WithLabelValues(e.Workflow, result(e.Err)).Inc()
		},
	}
}

// WriteText dumps every metric family in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
