// Package promcollector exports solver metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baldhumanity/pso-go/pso"
)

// Collector implements pso.MetricsCollector on Prometheus metrics.
type Collector struct {
	runs         *prometheus.CounterVec
	steps        prometheus.Counter
	evaluations  prometheus.Counter
	improvements prometheus.Counter
	bestFitness  prometheus.Gauge
	runDuration  prometheus.Histogram
}

var _ pso.MetricsCollector = (*Collector)(nil)

// New creates the metrics under namespace and registers them with reg.
// A nil reg means prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished solver runs by terminal state",
		}, []string{"state"}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Update steps performed",
		}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Objective function evaluations",
		}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "improvements_total",
			Help:      "Global best improvements",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Most recently reported global best fitness",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of solver runs",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	for _, m := range []prometheus.Collector{
		c.runs, c.steps, c.evaluations, c.improvements, c.bestFitness, c.runDuration,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) RecordRun(state pso.State, steps, evaluations int, d time.Duration) {
	c.runs.WithLabelValues(state.String()).Inc()
	c.steps.Add(float64(steps))
	c.evaluations.Add(float64(evaluations))
	c.runDuration.Observe(d.Seconds())
}

func (c *Collector) RecordImprovement(_ int, fitness float64) {
	c.improvements.Inc()
	c.bestFitness.Set(fitness)
}
