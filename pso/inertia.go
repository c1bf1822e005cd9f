package pso

import "fmt"

// InertiaSchedule yields the inertia weight for a step.
type InertiaSchedule interface {
	Weight(step int) float64
}

// NewInertiaSchedule builds the schedule selected by s.
func NewInertiaSchedule(s *Settings) (InertiaSchedule, error) {
	switch s.Inertia {
	case InertiaConstant:
		return ConstantSchedule{W: s.W}, nil
	case InertiaLinearDecreasing:
		return LinearDecreasingSchedule{WMax: s.WMax, WMin: s.WMin, Steps: s.Steps}, nil
	default:
		return nil, fmt.Errorf("unsupported inertia strategy: %v", s.Inertia)
	}
}

// ConstantSchedule returns W at every step.
type ConstantSchedule struct {
	W float64
}

func (c ConstantSchedule) Weight(int) float64 { return c.W }

// LinearDecreasingSchedule falls linearly from WMax to WMin over the first
// three quarters of Steps and stays at WMin afterwards.
type LinearDecreasingSchedule struct {
	WMax  float64
	WMin  float64
	Steps int
}

func (l LinearDecreasingSchedule) Weight(step int) float64 {
	decStage := 3 * l.Steps / 4
	if decStage <= 0 || step > decStage {
		return l.WMin
	}
	return l.WMin + (l.WMax-l.WMin)*float64(decStage-step)/float64(decStage)
}
