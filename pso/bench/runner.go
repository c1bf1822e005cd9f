package bench

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/baldhumanity/pso-go/pso"
)

// Runner repeats a solver run over consecutive seeds and summarizes the outcomes.
type Runner struct {
	// Trials is the number of independent runs.
	Trials int
	// BaseSeed seeds trial i with BaseSeed+i.
	BaseSeed int64
	// Parallelism bounds concurrent trials. Zero means GOMAXPROCS.
	Parallelism int

	Logger  *pso.Logger
	Metrics pso.MetricsCollector
}

// Trial is the outcome of one seeded run.
type Trial struct {
	Index  int
	Seed   int64
	Result *pso.Result
}

// Report summarizes the trials of one benchmark.
type Report struct {
	Function  string
	Dim       int
	Trials    int
	Converged int

	Fitness Stats
	Steps   Stats
	Evals   Stats
	TimeMs  Stats
}

// ConvergenceRate is the fraction of trials that reached the goal.
func (r Report) ConvergenceRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Converged) / float64(r.Trials)
}

// Run executes r.Trials runs of obj. Each trial owns its Solver and random
// stream, so results depend only on the seed, not on scheduling.
func (r Runner) Run(ctx context.Context, name string, settings *pso.Settings, obj pso.ObjectiveFunc, params any) (Report, []Trial, error) {
	if r.Trials <= 0 {
		return Report{}, nil, fmt.Errorf("bench %s: trials must be positive, got %d", name, r.Trials)
	}
	if err := settings.Validate(); err != nil {
		return Report{}, nil, fmt.Errorf("bench %s: %w", name, err)
	}

	limit := r.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	trials := make([]Trial, r.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := 0; i < r.Trials; i++ {
		i := i
		seed := r.BaseSeed + int64(i)
		g.Go(func() error {
			solver, err := pso.NewSolver(settings, rand.New(rand.NewSource(seed)),
				pso.WithLogger(r.Logger),
				pso.WithMetrics(r.Metrics),
			)
			if err != nil {
				return err
			}
			res, err := solver.Solve(gctx, obj, params)
			if err != nil {
				return fmt.Errorf("trial %d (seed %d): %w", i, seed, err)
			}
			trials[i] = Trial{Index: i, Seed: seed, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, nil, fmt.Errorf("bench %s: %w", name, err)
	}

	return Summarize(name, settings.Dim, trials), trials, nil
}

// Summarize builds a Report from completed trials.
func Summarize(name string, dim int, trials []Trial) Report {
	rep := Report{Function: name, Dim: dim, Trials: len(trials)}

	fitness := make([]float64, 0, len(trials))
	steps := make([]float64, 0, len(trials))
	evals := make([]float64, 0, len(trials))
	times := make([]float64, 0, len(trials))
	for _, t := range trials {
		if t.Result == nil {
			continue
		}
		if t.Result.State == pso.StateConverged {
			rep.Converged++
		}
		fitness = append(fitness, t.Result.Fitness)
		steps = append(steps, float64(t.Result.Steps))
		evals = append(evals, float64(t.Result.Evaluations))
		times = append(times, float64(t.Result.Duration.Microseconds())/1000.0)
	}

	rep.Fitness = CalcStats(fitness)
	rep.Steps = CalcStats(steps)
	rep.Evals = CalcStats(evals)
	rep.TimeMs = CalcStats(times)
	return rep
}
