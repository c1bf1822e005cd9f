package pso

// ProgressEvent is emitted every Settings.PrintEvery steps.
// Rendering is left entirely to the receiver.
type ProgressEvent struct {
	Step    int
	Steps   int
	Inertia float64
	Best    float64
}

// Fraction returns Step/Steps clamped to [0, 1].
func (e ProgressEvent) Fraction() float64 {
	if e.Steps <= 0 {
		return 0
	}
	f := float64(e.Step) / float64(e.Steps)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// ProgressFunc receives progress events synchronously from the solver.
type ProgressFunc func(ProgressEvent)

// StepObserver is called at the end of every update step with the swarm and
// the current solution. Both are owned by the solver and must not be modified
// or retained.
type StepObserver func(step int, sw *Swarm, sol *Result)
