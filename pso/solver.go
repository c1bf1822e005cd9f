package pso

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ObjectiveFunc is the function being minimized. It receives a position of
// length Settings.Dim and the opaque params given to Solve, and must not
// retain or modify x. Lower is better.
type ObjectiveFunc func(x []float64, params any) float64

// State is the phase of a solver run.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateConverged // global best reached Settings.Goal
	StateExhausted // Settings.Steps update steps performed
	StateCancelled // context done before either of the above
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further steps follow s.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateExhausted || s == StateCancelled
}

// Result is the outcome of a run: the best position ever evaluated and its fitness.
type Result struct {
	Position []float64
	Fitness  float64

	State       State
	Steps       int // update steps performed
	Evaluations int

	// StepsSinceImprovement counts the final update steps that left the global best unchanged.
	StepsSinceImprovement int

	// History holds the global-best fitness at the end of each update step.
	History []float64

	Duration time.Duration
}

// Solver runs PSO with one settings snapshot and one explicitly seeded random stream.
// A Solver is not safe for concurrent use; concurrent runs need their own Solver and stream.
type Solver struct {
	settings *Settings
	rng      *rand.Rand
	opts     options
	state    State
}

// NewSolver validates settings and returns a solver drawing all randomness from rng.
// The settings are copied; later changes to the argument do not affect the solver.
func NewSolver(settings *Settings, rng *rand.Rand, opts ...Option) (*Solver, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, configErrorf("rng", "random stream must not be nil")
	}
	if err := checkBufferSize("swarm state", settings.Size, settings.Dim); err != nil {
		return nil, err
	}
	if settings.Neighborhood != NeighborhoodGlobal {
		if err := checkBufferSize("communication relation", settings.Size, settings.Size); err != nil {
			return nil, err
		}
	}

	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Solver{
		settings: settings.Clone(),
		rng:      rng,
		opts:     o,
		state:    StateInitializing,
	}, nil
}

// Settings returns the solver's own copy of the settings. Its Step field
// tracks the step being executed.
func (s *Solver) Settings() *Settings { return s.settings }

// State returns the phase of the current or last run.
func (s *Solver) State() State { return s.state }

// Solve minimizes obj. It stops when the global best reaches the goal, after
// Settings.Steps update steps, or when ctx is done; in the last case the
// best result so far is returned together with ctx.Err().
func (s *Solver) Solve(ctx context.Context, obj ObjectiveFunc, params any) (*Result, error) {
	if obj == nil {
		return nil, configErrorf("objective", "must not be nil")
	}
	start := time.Now()
	set := s.settings
	set.Step = 0
	s.state = StateInitializing

	topology, err := NewTopology(set, s.rng)
	if err != nil {
		return nil, err
	}
	inertia, err := NewInertiaSchedule(set)
	if err != nil {
		return nil, err
	}
	boundary, err := NewBoundaryPolicy(set)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Position: make([]float64, set.Dim),
		History:  make([]float64, 0, min(set.Steps, 1<<16)),
	}
	eval := func(x []float64) float64 {
		res.Evaluations++
		return obj(x, params)
	}

	log := s.opts.logger
	log.LogRunStart(ctx, set)

	sw := newSwarm(set.Size, set.Dim)
	sw.initialize(set, s.rng, eval, res)

	s.state = StateRunning
	stag := newStagnation()

	var runErr error
	for step := 0; ; step++ {
		set.Step = step

		if res.Fitness <= set.Goal {
			s.state = StateConverged
			break
		}
		if step >= set.Steps {
			s.state = StateExhausted
			break
		}
		if err := ctx.Err(); err != nil {
			s.state = StateCancelled
			runErr = err
			break
		}

		w := inertia.Weight(step)

		improved := stag.begin(step)
		topology.Inform(sw, res.Position, improved)

		for i := range sw.Pos {
			pos, vel := sw.Pos[i], sw.Vel[i]
			best, nb := sw.BestPos[i], sw.Informant[i]
			for d := range pos {
				rho1 := set.C1 * s.rng.Float64()
				rho2 := set.C2 * s.rng.Float64()

				vel[d] = w*vel[d] +
					rho1*(best[d]-pos[d]) +
					rho2*(nb[d]-pos[d])
				pos[d] += vel[d]
			}
			boundary.Apply(pos, vel, set.RangeLo, set.RangeHi)

			sw.Fit[i] = eval(pos)

			if sw.Fit[i] < sw.BestFit[i] {
				sw.BestFit[i] = sw.Fit[i]
				copy(best, pos)
			}

			if sw.Fit[i] < res.Fitness {
				res.Fitness = sw.Fit[i]
				copy(res.Position, pos)
				stag.markImproved()
				s.opts.metrics.RecordImprovement(step, res.Fitness)
				log.LogImprovement(ctx, step, res.Fitness)
			}
		}

		res.Steps = step + 1
		res.History = append(res.History, res.Fitness)

		if s.opts.observer != nil {
			s.opts.observer(step, sw, res)
		}
		if s.opts.progress != nil && set.PrintEvery > 0 && step%set.PrintEvery == 0 {
			s.opts.progress(ProgressEvent{
				Step:    step,
				Steps:   set.Steps,
				Inertia: w,
				Best:    res.Fitness,
			})
		}
	}

	res.State = s.state
	res.StepsSinceImprovement = stag.since(res.Steps)
	res.Duration = time.Since(start)

	s.opts.metrics.RecordRun(res.State, res.Steps, res.Evaluations, res.Duration)
	log.LogRunEnd(ctx, res, runErr)

	if runErr != nil {
		return res, fmt.Errorf("solve interrupted at step %d: %w", res.Steps, runErr)
	}
	return res, nil
}

// IsCancelled reports whether err came from a Solve stopped by its context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
