package pso

import (
	"math"
	"math/rand"
)

// MaxBufferElements bounds the number of elements in any single swarm buffer.
const MaxBufferElements = 1 << 28

// Swarm is the numeric state of every particle in a run.
// Row i of each matrix belongs to particle i.
type Swarm struct {
	Pos       [][]float64 // current positions
	Vel       [][]float64 // current velocities
	BestPos   [][]float64 // personal-best positions
	Informant [][]float64 // best position offered by the neighborhood this step
	Fit       []float64   // fitness at Pos
	BestFit   []float64   // fitness at BestPos
}

func newSwarm(size, dim int) *Swarm {
	return &Swarm{
		Pos:       newMatrix(size, dim),
		Vel:       newMatrix(size, dim),
		BestPos:   newMatrix(size, dim),
		Informant: newMatrix(size, dim),
		Fit:       make([]float64, size),
		BestFit:   make([]float64, size),
	}
}

// Size returns the number of particles.
func (sw *Swarm) Size() int { return len(sw.Pos) }

// newMatrix allocates rows out of one contiguous backing array.
func newMatrix(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// checkBufferSize reports a *ResourceError when rows*cols overflows or exceeds MaxBufferElements.
func checkBufferSize(what string, rows, cols int) error {
	if rows == 0 || cols == 0 {
		return nil
	}
	if rows > math.MaxInt/cols {
		return &ResourceError{What: what, Elements: -1}
	}
	if n := rows * cols; n > MaxBufferElements {
		return &ResourceError{What: what, Elements: n}
	}
	return nil
}

// initialize places every particle uniformly in the search box, gives it
// half the difference of two uniform points as initial velocity, and
// evaluates it. sol receives the best initial particle.
func (sw *Swarm) initialize(s *Settings, rng *rand.Rand, eval func([]float64) float64, sol *Result) {
	sol.Fitness = math.Inf(1)
	for i := range sw.Pos {
		for d := 0; d < s.Dim; d++ {
			width := s.RangeHi[d] - s.RangeLo[d]
			a := s.RangeLo[d] + width*rng.Float64()
			b := s.RangeLo[d] + width*rng.Float64()

			sw.Pos[i][d] = a
			sw.BestPos[i][d] = a
			sw.Vel[i][d] = (a - b) / 2.0
		}

		sw.Fit[i] = eval(sw.Pos[i])
		sw.BestFit[i] = sw.Fit[i]

		if sw.Fit[i] < sol.Fitness {
			sol.Fitness = sw.Fit[i]
			copy(sol.Position, sw.Pos[i])
		}
	}
}
