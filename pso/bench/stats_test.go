package bench

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcStats(t *testing.T) {
	s := CalcStats([]float64{4, 1, 3, 2})
	assert.Equal(t, 4, s.N)
	assert.Equal(t, 1.0, s.Best)
	assert.Equal(t, 4.0, s.Worst)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)

	odd := CalcStats([]float64{9, 1, 5})
	assert.Equal(t, 5.0, odd.Median)
}

func TestCalcStatsSmallSamples(t *testing.T) {
	one := CalcStats([]float64{7})
	assert.Equal(t, 7.0, one.Mean)
	assert.Equal(t, 0.0, one.Std)
	assert.Equal(t, 7.0, one.Median)

	empty := CalcStats(nil)
	assert.Equal(t, 0, empty.N)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.Best))
}

func TestCalcStatsDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	CalcStats(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}
