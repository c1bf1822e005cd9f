package pso

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// MaxSwarmSize caps the swarm size suggested by CalcSwarmSize.
	MaxSwarmSize = 100

	// DefaultInertia is the constriction-derived weight from Clerc (2002).
	DefaultInertia = 0.7298

	// DefaultGoal is the default stopping error.
	DefaultGoal = 1e-5
)

// NeighborhoodStrategy selects which particles inform which others.
type NeighborhoodStrategy int

const (
	NeighborhoodGlobal NeighborhoodStrategy = iota
	NeighborhoodRing
	NeighborhoodRandom
)

func (n NeighborhoodStrategy) String() string {
	switch n {
	case NeighborhoodGlobal:
		return "global"
	case NeighborhoodRing:
		return "ring"
	case NeighborhoodRandom:
		return "random"
	default:
		return fmt.Sprintf("NeighborhoodStrategy(%d)", int(n))
	}
}

// ParseNeighborhood maps a configuration name to a NeighborhoodStrategy.
func ParseNeighborhood(name string) (NeighborhoodStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "global", "gbest":
		return NeighborhoodGlobal, nil
	case "ring", "lbest":
		return NeighborhoodRing, nil
	case "random":
		return NeighborhoodRandom, nil
	}
	return 0, configErrorf("neighborhood", "unknown strategy %q, must be one of 'global', 'ring', 'random'", name)
}

// InertiaStrategy selects how the inertia weight evolves over a run.
type InertiaStrategy int

const (
	InertiaConstant InertiaStrategy = iota
	InertiaLinearDecreasing
)

func (s InertiaStrategy) String() string {
	switch s {
	case InertiaConstant:
		return "const"
	case InertiaLinearDecreasing:
		return "lin_dec"
	default:
		return fmt.Sprintf("InertiaStrategy(%d)", int(s))
	}
}

// ParseInertia maps a configuration name to an InertiaStrategy.
func ParseInertia(name string) (InertiaStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "const", "constant":
		return InertiaConstant, nil
	case "lin_dec", "linear", "linear_decreasing":
		return InertiaLinearDecreasing, nil
	}
	return 0, configErrorf("inertia", "unknown strategy %q, must be one of 'const', 'lin_dec'", name)
}

// BoundaryMode selects what happens to a particle leaving the search box.
type BoundaryMode int

const (
	BoundaryClamp BoundaryMode = iota
	BoundaryPeriodic
)

func (b BoundaryMode) String() string {
	switch b {
	case BoundaryClamp:
		return "clamp"
	case BoundaryPeriodic:
		return "periodic"
	default:
		return fmt.Sprintf("BoundaryMode(%d)", int(b))
	}
}

// ParseBoundary maps a configuration name to a BoundaryMode.
func ParseBoundary(name string) (BoundaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clamp":
		return BoundaryClamp, nil
	case "periodic", "wrap":
		return BoundaryPeriodic, nil
	}
	return 0, configErrorf("boundary", "unknown mode %q, must be one of 'clamp', 'periodic'", name)
}

// Settings holds the parameters of a single PSO run.
//
// Settings must not be modified while a Solver built from it is running.
// The solver works on its own copy and only writes the Step counter of that copy.
type Settings struct {
	Dim     int
	RangeLo []float64
	RangeHi []float64

	Goal float64

	Size       int
	PrintEvery int // 0 disables progress events
	Steps      int
	Step       int // current step, maintained by the solver

	C1 float64
	C2 float64

	W    float64
	WMax float64
	WMin float64

	Boundary         BoundaryMode
	Neighborhood     NeighborhoodStrategy
	NeighborhoodSize int
	Inertia          InertiaStrategy

	// Seed is not consumed by the solver, which takes an explicit random stream.
	// Callers building the stream from a config file read it from here.
	Seed int64
}

// CalcSwarmSize suggests a swarm size for the given dimension: 10 + 2*sqrt(dim), capped at MaxSwarmSize.
func CalcSwarmSize(dim int) int {
	size := int(10. + 2.*math.Sqrt(float64(dim)))
	if size > MaxSwarmSize {
		return MaxSwarmSize
	}
	return size
}

func defaultSettings(dim int) *Settings {
	size := 0
	if dim > 0 {
		size = CalcSwarmSize(dim)
	}
	return &Settings{
		Dim:              dim,
		Goal:             DefaultGoal,
		Size:             size,
		PrintEvery:       1000,
		Steps:            100000,
		C1:               1.496,
		C2:               1.496,
		W:                DefaultInertia,
		WMax:             DefaultInertia,
		WMin:             0.3,
		Boundary:         BoundaryClamp,
		Neighborhood:     NeighborhoodRing,
		NeighborhoodSize: 5,
		Inertia:          InertiaLinearDecreasing,
	}
}

// NewSettings returns default settings for a dim-dimensional problem whose
// every coordinate lies in [rangeLo, rangeHi].
func NewSettings(dim int, rangeLo, rangeHi float64) (*Settings, error) {
	if dim < 1 {
		return nil, configErrorf("dim", "must be >= 1 (got %d)", dim)
	}
	s := defaultSettings(dim)
	s.RangeLo = broadcast(rangeLo, dim)
	s.RangeHi = broadcast(rangeHi, dim)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetBounds replaces the per-dimension bounds. Both slices must have length Dim.
func (s *Settings) SetBounds(lo, hi []float64) error {
	if len(lo) != s.Dim || len(hi) != s.Dim {
		return configErrorf("bounds", "must have length %d (got %d and %d)", s.Dim, len(lo), len(hi))
	}
	for d := range lo {
		if err := checkInterval(d, lo[d], hi[d]); err != nil {
			return err
		}
	}
	s.RangeLo = append([]float64(nil), lo...)
	s.RangeHi = append([]float64(nil), hi...)
	return nil
}

// Validate reports the first invalid value in s as a *ConfigError.
func (s *Settings) Validate() error {
	if s == nil {
		return configErrorf("settings", "must not be nil")
	}
	if s.Dim < 1 {
		return configErrorf("dim", "must be >= 1 (got %d)", s.Dim)
	}
	if len(s.RangeLo) != s.Dim || len(s.RangeHi) != s.Dim {
		return configErrorf("bounds", "must have length %d (got %d and %d)", s.Dim, len(s.RangeLo), len(s.RangeHi))
	}
	for d := 0; d < s.Dim; d++ {
		if err := checkInterval(d, s.RangeLo[d], s.RangeHi[d]); err != nil {
			return err
		}
	}
	if s.Size < 1 {
		return configErrorf("size", "must be >= 1 (got %d)", s.Size)
	}
	if s.Steps < 0 {
		return configErrorf("steps", "cannot be negative (got %d)", s.Steps)
	}
	if s.PrintEvery < 0 {
		return configErrorf("print_every", "cannot be negative (got %d)", s.PrintEvery)
	}
	if math.IsNaN(s.Goal) {
		return configErrorf("goal", "must be a number")
	}
	if !(s.C1 > 0) || math.IsInf(s.C1, 0) {
		return configErrorf("c1", "must be a finite value > 0 (got %g)", s.C1)
	}
	if !(s.C2 > 0) || math.IsInf(s.C2, 0) {
		return configErrorf("c2", "must be a finite value > 0 (got %g)", s.C2)
	}

	switch s.Inertia {
	case InertiaConstant:
		if !isFinite(s.W) {
			return configErrorf("w", "must be finite (got %g)", s.W)
		}
	case InertiaLinearDecreasing:
		if !isFinite(s.WMax) || !isFinite(s.WMin) {
			return configErrorf("w_max/w_min", "must be finite (got %g, %g)", s.WMax, s.WMin)
		}
	default:
		return configErrorf("inertia", "unknown strategy %d", int(s.Inertia))
	}

	switch s.Neighborhood {
	case NeighborhoodGlobal, NeighborhoodRing:
	case NeighborhoodRandom:
		if s.NeighborhoodSize < 0 {
			return configErrorf("neighborhood_size", "cannot be negative (got %d)", s.NeighborhoodSize)
		}
	default:
		return configErrorf("neighborhood", "unknown strategy %d", int(s.Neighborhood))
	}

	switch s.Boundary {
	case BoundaryClamp, BoundaryPeriodic:
	default:
		return configErrorf("boundary", "unknown mode %d", int(s.Boundary))
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	c.RangeLo = append([]float64(nil), s.RangeLo...)
	c.RangeHi = append([]float64(nil), s.RangeHi...)
	return &c
}

func checkInterval(d int, lo, hi float64) error {
	if !isFinite(lo) || !isFinite(hi) {
		return configErrorf(fmt.Sprintf("bounds[%d]", d), "must be finite (got [%g, %g])", lo, hi)
	}
	if lo >= hi {
		return configErrorf(fmt.Sprintf("bounds[%d]", d), "lower bound must be < upper bound (got %g >= %g)", lo, hi)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func broadcast(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// --- INI loading ---

type problemSection struct {
	Dimension   int       `ini:"dimension"`
	RangeLo     float64   `ini:"range_lo"`
	RangeHi     float64   `ini:"range_hi"`
	LowerBounds []float64 `ini:"lower_bounds" delim:" "`
	UpperBounds []float64 `ini:"upper_bounds" delim:" "`
	Goal        float64   `ini:"goal"`
}

type swarmSection struct {
	Size       int     `ini:"size"`
	Steps      int     `ini:"steps"`
	PrintEvery int     `ini:"print_every"`
	C1         float64 `ini:"c1"`
	C2         float64 `ini:"c2"`
	Seed       int64   `ini:"seed"`
}

type inertiaSection struct {
	Strategy string  `ini:"strategy"`
	W        float64 `ini:"w"`
	WMax     float64 `ini:"w_max"`
	WMin     float64 `ini:"w_min"`
}

type neighborhoodSection struct {
	Strategy string `ini:"strategy"`
	Size     int    `ini:"size"`
}

type boundarySection struct {
	Mode string `ini:"mode"`
}

// LoadSettings loads settings from an INI file with the sections
// [problem], [swarm], [inertia], [neighborhood] and [boundary].
// Keys that are absent keep the defaults of NewSettings.
func LoadSettings(filePath string) (*Settings, error) {
	s, err := loadSettings(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings '%s': %w", filePath, err)
	}
	return s, nil
}

func loadSettings(source any) (*Settings, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
		Insensitive:                 true,
	}, source)
	if err != nil {
		return nil, err
	}

	problem := problemSection{Goal: DefaultGoal}
	if err := cfg.Section("problem").MapTo(&problem); err != nil {
		return nil, fmt.Errorf("failed to map [problem] section: %w", err)
	}
	if problem.Dimension < 1 {
		return nil, configErrorf("dimension", "must be >= 1 (got %d)", problem.Dimension)
	}

	s := defaultSettings(problem.Dimension)
	s.Goal = problem.Goal
	if len(problem.LowerBounds) > 0 || len(problem.UpperBounds) > 0 {
		if err := s.SetBounds(problem.LowerBounds, problem.UpperBounds); err != nil {
			return nil, err
		}
	} else {
		s.RangeLo = broadcast(problem.RangeLo, s.Dim)
		s.RangeHi = broadcast(problem.RangeHi, s.Dim)
	}

	swarm := swarmSection{
		Size:       s.Size,
		Steps:      s.Steps,
		PrintEvery: s.PrintEvery,
		C1:         s.C1,
		C2:         s.C2,
	}
	if err := cfg.Section("swarm").MapTo(&swarm); err != nil {
		return nil, fmt.Errorf("failed to map [swarm] section: %w", err)
	}
	s.Size, s.Steps, s.PrintEvery = swarm.Size, swarm.Steps, swarm.PrintEvery
	s.C1, s.C2, s.Seed = swarm.C1, swarm.C2, swarm.Seed

	inertia := inertiaSection{Strategy: s.Inertia.String(), W: s.W, WMax: s.WMax, WMin: s.WMin}
	if err := cfg.Section("inertia").MapTo(&inertia); err != nil {
		return nil, fmt.Errorf("failed to map [inertia] section: %w", err)
	}
	if s.Inertia, err = ParseInertia(cleanIniString(inertia.Strategy)); err != nil {
		return nil, err
	}
	s.W, s.WMax, s.WMin = inertia.W, inertia.WMax, inertia.WMin

	nhood := neighborhoodSection{Strategy: s.Neighborhood.String(), Size: s.NeighborhoodSize}
	if err := cfg.Section("neighborhood").MapTo(&nhood); err != nil {
		return nil, fmt.Errorf("failed to map [neighborhood] section: %w", err)
	}
	if s.Neighborhood, err = ParseNeighborhood(cleanIniString(nhood.Strategy)); err != nil {
		return nil, err
	}
	s.NeighborhoodSize = nhood.Size

	boundary := boundarySection{Mode: s.Boundary.String()}
	if err := cfg.Section("boundary").MapTo(&boundary); err != nil {
		return nil, fmt.Errorf("failed to map [boundary] section: %w", err)
	}
	if s.Boundary, err = ParseBoundary(cleanIniString(boundary.Mode)); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
