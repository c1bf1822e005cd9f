package pso

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from solvers.
// Implementations must be safe for concurrent use when shared between runs.
type MetricsCollector interface {
	// RecordRun is called once when a run terminates.
	RecordRun(state State, steps, evaluations int, duration time.Duration)

	// RecordImprovement is called whenever the global best of a run improves.
	RecordImprovement(step int, fitness float64)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(State, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordImprovement(int, float64)          {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	Runs         atomic.Int64
	Converged    atomic.Int64
	Exhausted    atomic.Int64
	Cancelled    atomic.Int64
	Steps        atomic.Int64
	Evaluations  atomic.Int64
	Improvements atomic.Int64
	RunNanos     atomic.Int64

	lastBest atomic.Uint64
}

func (b *BasicMetricsCollector) RecordRun(state State, steps, evaluations int, duration time.Duration) {
	b.Runs.Add(1)
	switch state {
	case StateConverged:
		b.Converged.Add(1)
	case StateExhausted:
		b.Exhausted.Add(1)
	case StateCancelled:
		b.Cancelled.Add(1)
	}
	b.Steps.Add(int64(steps))
	b.Evaluations.Add(int64(evaluations))
	b.RunNanos.Add(duration.Nanoseconds())
}

func (b *BasicMetricsCollector) RecordImprovement(_ int, fitness float64) {
	b.Improvements.Add(1)
	b.lastBest.Store(math.Float64bits(fitness))
}

// LastBest returns the most recently reported global-best fitness.
func (b *BasicMetricsCollector) LastBest() float64 {
	return math.Float64frombits(b.lastBest.Load())
}

// ConvergenceRate returns the fraction of recorded runs that reached the goal.
func (b *BasicMetricsCollector) ConvergenceRate() float64 {
	runs := b.Runs.Load()
	if runs == 0 {
		return 0
	}
	return float64(b.Converged.Load()) / float64(runs)
}
