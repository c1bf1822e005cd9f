package pso

import (
	"fmt"
	"math"
)

// BoundaryPolicy brings a moved particle back into [lo, hi].
// Each dimension is handled on its own and only when it is out of range.
type BoundaryPolicy interface {
	Apply(pos, vel, lo, hi []float64)
}

// NewBoundaryPolicy builds the policy selected by s.
func NewBoundaryPolicy(s *Settings) (BoundaryPolicy, error) {
	switch s.Boundary {
	case BoundaryClamp:
		return ClampPolicy{}, nil
	case BoundaryPeriodic:
		return PeriodicPolicy{}, nil
	default:
		return nil, fmt.Errorf("unsupported boundary mode: %v", s.Boundary)
	}
}

// ClampPolicy pins the coordinate to the violated bound and stops the particle in that dimension.
type ClampPolicy struct{}

func (ClampPolicy) Apply(pos, vel, lo, hi []float64) {
	for d := range pos {
		if pos[d] < lo[d] {
			pos[d] = lo[d]
			vel[d] = 0
		} else if pos[d] > hi[d] {
			pos[d] = hi[d]
			vel[d] = 0
		}
	}
}

// PeriodicPolicy wraps the coordinate around the box so that leaving
// through one face re-enters through the opposite one at the same offset.
// Velocity in that dimension is zeroed.
type PeriodicPolicy struct{}

func (PeriodicPolicy) Apply(pos, vel, lo, hi []float64) {
	for d := range pos {
		width := hi[d] - lo[d]
		if pos[d] < lo[d] {
			pos[d] = hi[d] - math.Mod(lo[d]-pos[d], width)
			vel[d] = 0
		} else if pos[d] > hi[d] {
			pos[d] = lo[d] + math.Mod(pos[d]-hi[d], width)
			vel[d] = 0
		}
	}
}
