package promcollector

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/pso-go/pso"
)

func gatherValues(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "pso")
	require.NoError(t, err)

	c.RecordImprovement(0, 12.5)
	c.RecordImprovement(3, 0.25)
	c.RecordRun(pso.StateConverged, 10, 110, 20*time.Millisecond)
	c.RecordRun(pso.StateExhausted, 5, 60, time.Millisecond)

	got := gatherValues(t, reg)
	assert.Equal(t, 1.0, got["pso_runs_total{state=converged}"])
	assert.Equal(t, 1.0, got["pso_runs_total{state=exhausted}"])
	assert.Equal(t, 15.0, got["pso_steps_total"])
	assert.Equal(t, 170.0, got["pso_evaluations_total"])
	assert.Equal(t, 2.0, got["pso_improvements_total"])
	assert.Equal(t, 0.25, got["pso_best_fitness"])
	assert.Equal(t, 2.0, got["pso_run_duration_seconds"])
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "pso")
	require.NoError(t, err)

	_, err = New(reg, "pso")
	assert.Error(t, err)
}

func TestCollectorWithSolver(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "swarm")
	require.NoError(t, err)

	s, err := pso.NewSettings(2, -5, 5)
	require.NoError(t, err)
	s.Steps = 20

	solver, err := pso.NewSolver(s, rand.New(rand.NewSource(1)), pso.WithMetrics(c))
	require.NoError(t, err)

	res, err := solver.Solve(context.Background(), func(x []float64, _ any) float64 {
		return x[0]*x[0] + x[1]*x[1]
	}, nil)
	require.NoError(t, err)

	got := gatherValues(t, reg)
	assert.Equal(t, 1.0, got["swarm_runs_total{state="+res.State.String()+"}"])
	assert.Equal(t, float64(res.Steps), got["swarm_steps_total"])
	assert.Equal(t, float64(res.Evaluations), got["swarm_evaluations_total"])
	if got["swarm_improvements_total"] > 0 {
		assert.Equal(t, res.Fitness, got["swarm_best_fitness"])
	}
}
