package pso

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPolicy(t *testing.T) {
	lo := []float64{-100, -100, -100}
	hi := []float64{100, 100, 100}
	pos := []float64{-150, 50, 120}
	vel := []float64{-60, 3, 40}

	ClampPolicy{}.Apply(pos, vel, lo, hi)

	assert.Equal(t, []float64{-100, 50, 100}, pos)
	assert.Equal(t, []float64{0, 3, 0}, vel, "only violated dimensions stop")
}

func TestClampPolicyKeepsBoundaryValues(t *testing.T) {
	pos := []float64{-1, 1}
	vel := []float64{2, 2}
	ClampPolicy{}.Apply(pos, vel, []float64{-1, -1}, []float64{1, 1})
	assert.Equal(t, []float64{-1, 1}, pos)
	assert.Equal(t, []float64{2, 2}, vel)
}

func TestPeriodicPolicy(t *testing.T) {
	lo := []float64{0, 0, 0, 0, 0}
	hi := []float64{10, 10, 10, 10, 10}
	pos := []float64{-0.5, 10.5, 23, -25, 4}
	vel := []float64{1, 1, 1, 1, 1}

	PeriodicPolicy{}.Apply(pos, vel, lo, hi)

	assert.InDeltaSlice(t, []float64{9.5, 0.5, 3, 5, 4}, pos, 1e-12)
	assert.Equal(t, []float64{0, 0, 0, 0, 1}, vel)
}

func TestPeriodicPolicyReentersAtOppositeOffset(t *testing.T) {
	lo := []float64{-5.12, -600}
	hi := []float64{5.12, 600}
	for _, eps := range []float64{1e-9, 1e-3, 0.25, 1} {
		pos := []float64{lo[0] - eps, hi[1] + eps}
		vel := []float64{-1, 1}

		PeriodicPolicy{}.Apply(pos, vel, lo, hi)

		assert.InDelta(t, hi[0]-eps, pos[0], 1e-9, "eps=%g", eps)
		assert.InDelta(t, lo[1]+eps, pos[1], 1e-9, "eps=%g", eps)
	}
}

func TestBoundaryPoliciesContainRandomMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	lo := []float64{-1, 0, 100}
	hi := []float64{1, 0.5, 300}

	for _, policy := range []BoundaryPolicy{ClampPolicy{}, PeriodicPolicy{}} {
		for trial := 0; trial < 1000; trial++ {
			pos := make([]float64, 3)
			vel := make([]float64, 3)
			for d := range pos {
				w := hi[d] - lo[d]
				pos[d] = lo[d] - 3*w + 7*w*rng.Float64()
			}
			policy.Apply(pos, vel, lo, hi)
			for d := range pos {
				require.GreaterOrEqual(t, pos[d], lo[d])
				require.LessOrEqual(t, pos[d], hi[d])
			}
		}
	}
}

func TestNewBoundaryPolicy(t *testing.T) {
	s, err := NewSettings(1, -1, 1)
	require.NoError(t, err)

	p, err := NewBoundaryPolicy(s)
	require.NoError(t, err)
	assert.IsType(t, ClampPolicy{}, p)

	s.Boundary = BoundaryPeriodic
	p, err = NewBoundaryPolicy(s)
	require.NoError(t, err)
	assert.IsType(t, PeriodicPolicy{}, p)

	s.Boundary = BoundaryMode(math.MaxInt8)
	_, err = NewBoundaryPolicy(s)
	assert.Error(t, err)
}
