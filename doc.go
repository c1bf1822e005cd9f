// Package pso provides a Go implementation of Particle Swarm Optimization (PSO)
// for minimizing continuous functions over a bounded box.
//
// A swarm of particles moves through the search space. Each particle is pulled
// toward its own best position and toward the best position known to its
// neighborhood. Neighborhoods can be global, a fixed ring, or a random relation
// that is redrawn whenever the swarm stagnates. The inertia weight can be
// constant or decrease linearly, and particles leaving the box are either
// clamped to it or wrapped around it.
//
// The solver itself lives in the pso subpackage; pso/bench holds the classic
// test functions and a multi-trial runner, pso/storage archives finished runs
// in memory or SQLite, and pso/promcollector exports solver metrics to Prometheus.
//
// Basic usage:
//
//	// Default settings for a 30-dimensional problem on [-100, 100]
//	settings, err := pso.NewSettings(30, -100, 100)
//	if err != nil {
//		log.Fatalf("Error creating settings: %v", err)
//	}
//	settings.Neighborhood = pso.NeighborhoodGlobal
//
//	// Every random draw comes from this stream, so a seed replays a run exactly
//	solver, err := pso.NewSolver(settings, rand.New(rand.NewSource(42)))
//	if err != nil {
//		log.Fatalf("Error creating solver: %v", err)
//	}
//
//	res, err := solver.Solve(ctx, bench.Sphere, nil)
//	if err != nil {
//		log.Fatalf("Error running solver: %v", err)
//	}
//	fmt.Printf("%s after %d steps: f=%g at %v\n", res.State, res.Steps, res.Fitness, res.Position)
package pso
