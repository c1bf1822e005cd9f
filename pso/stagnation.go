package pso

// stagnation tracks whether the global best moved during a step.
//
// The flag handed to the topology at the start of step k is the outcome of
// step k-1; it is cleared right after being read so that step k starts from
// "not improved" and only an actual improvement during step k sets it again.
type stagnation struct {
	improved     bool
	lastImproved int // step of the last improvement, -1 when only initialization set the best
	step         int
}

func newStagnation() *stagnation {
	return &stagnation{lastImproved: -1}
}

// begin returns the previous step's outcome and resets the flag for step.
func (s *stagnation) begin(step int) bool {
	prev := s.improved
	s.improved = false
	s.step = step
	return prev
}

// markImproved records a new global best during the current step.
func (s *stagnation) markImproved() {
	s.improved = true
	s.lastImproved = s.step
}

// since returns the number of completed steps without improvement.
func (s *stagnation) since(completed int) int {
	return completed - (s.lastImproved + 1)
}
