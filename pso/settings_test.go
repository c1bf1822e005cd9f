package pso

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIni(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pso.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCalcSwarmSize(t *testing.T) {
	assert.Equal(t, 12, CalcSwarmSize(2))
	assert.Equal(t, 16, CalcSwarmSize(10))
	assert.Equal(t, 20, CalcSwarmSize(30))
	assert.Equal(t, MaxSwarmSize, CalcSwarmSize(2025))
	assert.Equal(t, MaxSwarmSize, CalcSwarmSize(1_000_000))
}

func TestNewSettingsDefaults(t *testing.T) {
	s, err := NewSettings(3, -5, 5)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Dim)
	assert.Equal(t, []float64{-5, -5, -5}, s.RangeLo)
	assert.Equal(t, []float64{5, 5, 5}, s.RangeHi)
	assert.Equal(t, DefaultGoal, s.Goal)
	assert.Equal(t, CalcSwarmSize(3), s.Size)
	assert.Equal(t, 1000, s.PrintEvery)
	assert.Equal(t, 100000, s.Steps)
	assert.Equal(t, 1.496, s.C1)
	assert.Equal(t, 1.496, s.C2)
	assert.Equal(t, DefaultInertia, s.W)
	assert.Equal(t, DefaultInertia, s.WMax)
	assert.Equal(t, 0.3, s.WMin)
	assert.Equal(t, BoundaryClamp, s.Boundary)
	assert.Equal(t, NeighborhoodRing, s.Neighborhood)
	assert.Equal(t, 5, s.NeighborhoodSize)
	assert.Equal(t, InertiaLinearDecreasing, s.Inertia)
}

func TestNewSettingsRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		dim    int
		lo, hi float64
		field  string
	}{
		{"zero dim", 0, -1, 1, "dim"},
		{"negative dim", -4, -1, 1, "dim"},
		{"equal bounds", 2, 1, 1, "bounds[0]"},
		{"inverted bounds", 2, 3, -3, "bounds[0]"},
		{"nan bound", 2, math.NaN(), 1, "bounds[0]"},
		{"infinite bound", 2, -1, math.Inf(1), "bounds[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSettings(tt.dim, tt.lo, tt.hi)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, ErrInvalidSettings))

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
		field  string
	}{
		{"size zero", func(s *Settings) { s.Size = 0 }, "size"},
		{"negative steps", func(s *Settings) { s.Steps = -1 }, "steps"},
		{"negative print_every", func(s *Settings) { s.PrintEvery = -1 }, "print_every"},
		{"nan goal", func(s *Settings) { s.Goal = math.NaN() }, "goal"},
		{"zero c1", func(s *Settings) { s.C1 = 0 }, "c1"},
		{"negative c2", func(s *Settings) { s.C2 = -1 }, "c2"},
		{"nan c1", func(s *Settings) { s.C1 = math.NaN() }, "c1"},
		{"inf c2", func(s *Settings) { s.C2 = math.Inf(1) }, "c2"},
		{"nan w", func(s *Settings) { s.Inertia = InertiaConstant; s.W = math.NaN() }, "w"},
		{"inf w_max", func(s *Settings) { s.WMax = math.Inf(1) }, "w_max/w_min"},
		{"bounds length", func(s *Settings) { s.RangeLo = s.RangeLo[:1] }, "bounds"},
		{"second bound inverted", func(s *Settings) { s.RangeLo[1] = 20 }, "bounds[1]"},
		{"negative fanout", func(s *Settings) {
			s.Neighborhood = NeighborhoodRandom
			s.NeighborhoodSize = -1
		}, "neighborhood_size"},
		{"unknown neighborhood", func(s *Settings) { s.Neighborhood = NeighborhoodStrategy(9) }, "neighborhood"},
		{"unknown inertia", func(s *Settings) { s.Inertia = InertiaStrategy(9) }, "inertia"},
		{"unknown boundary", func(s *Settings) { s.Boundary = BoundaryMode(9) }, "boundary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSettings(2, -10, 10)
			require.NoError(t, err)
			tt.mutate(s)

			err = s.Validate()
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	t.Run("nil settings", func(t *testing.T) {
		var s *Settings
		assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
	})

	t.Run("zero steps and fanout are valid", func(t *testing.T) {
		s, err := NewSettings(2, -10, 10)
		require.NoError(t, err)
		s.Steps = 0
		s.PrintEvery = 0
		s.Neighborhood = NeighborhoodRandom
		s.NeighborhoodSize = 0
		assert.NoError(t, s.Validate())
	})
}

func TestSettingsSetBoundsAndClone(t *testing.T) {
	s, err := NewSettings(2, -1, 1)
	require.NoError(t, err)

	require.NoError(t, s.SetBounds([]float64{-1, 0}, []float64{1, 10}))
	assert.Equal(t, []float64{-1, 0}, s.RangeLo)
	assert.Equal(t, []float64{1, 10}, s.RangeHi)

	assert.ErrorIs(t, s.SetBounds([]float64{0}, []float64{1}), ErrInvalidSettings)
	assert.ErrorIs(t, s.SetBounds([]float64{0, 5}, []float64{1, 5}), ErrInvalidSettings)
	assert.Equal(t, []float64{1, 10}, s.RangeHi, "failed SetBounds must not modify settings")

	c := s.Clone()
	c.RangeLo[0] = -50
	c.Size = 99
	assert.Equal(t, -1.0, s.RangeLo[0])
	assert.NotEqual(t, 99, s.Size)
}

func TestParseStrategies(t *testing.T) {
	nh, err := ParseNeighborhood(" Ring ")
	require.NoError(t, err)
	assert.Equal(t, NeighborhoodRing, nh)
	nh, err = ParseNeighborhood("gbest")
	require.NoError(t, err)
	assert.Equal(t, NeighborhoodGlobal, nh)
	_, err = ParseNeighborhood("star")
	assert.ErrorIs(t, err, ErrInvalidSettings)

	in, err := ParseInertia("linear")
	require.NoError(t, err)
	assert.Equal(t, InertiaLinearDecreasing, in)
	_, err = ParseInertia("chaotic")
	assert.ErrorIs(t, err, ErrInvalidSettings)

	b, err := ParseBoundary("wrap")
	require.NoError(t, err)
	assert.Equal(t, BoundaryPeriodic, b)
	_, err = ParseBoundary("reflect")
	assert.ErrorIs(t, err, ErrInvalidSettings)

	for _, n := range []NeighborhoodStrategy{NeighborhoodGlobal, NeighborhoodRing, NeighborhoodRandom} {
		got, err := ParseNeighborhood(n.String())
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
	for _, m := range []BoundaryMode{BoundaryClamp, BoundaryPeriodic} {
		got, err := ParseBoundary(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for _, s := range []InertiaStrategy{InertiaConstant, InertiaLinearDecreasing} {
		got, err := ParseInertia(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestLoadSettings(t *testing.T) {
	path := writeIni(t, `
# rastrigin in three dimensions
[problem]
dimension = 3
range_lo = -5.12
range_hi = 5.12
goal = 1e-8

[swarm]
size = 40
steps = 500
print_every = 0
c1 = 2.0
c2 = 1.5
seed = 7

[inertia]
strategy = const ; fixed weight
w = 0.6

[Neighborhood]
Strategy = random
size = 3

[boundary]
mode = periodic
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Dim)
	assert.Equal(t, []float64{-5.12, -5.12, -5.12}, s.RangeLo)
	assert.Equal(t, []float64{5.12, 5.12, 5.12}, s.RangeHi)
	assert.Equal(t, 1e-8, s.Goal)
	assert.Equal(t, 40, s.Size)
	assert.Equal(t, 500, s.Steps)
	assert.Equal(t, 0, s.PrintEvery)
	assert.Equal(t, 2.0, s.C1)
	assert.Equal(t, 1.5, s.C2)
	assert.Equal(t, int64(7), s.Seed)
	assert.Equal(t, InertiaConstant, s.Inertia)
	assert.Equal(t, 0.6, s.W)
	assert.Equal(t, NeighborhoodRandom, s.Neighborhood)
	assert.Equal(t, 3, s.NeighborhoodSize)
	assert.Equal(t, BoundaryPeriodic, s.Boundary)
}

func TestLoadSettingsDefaultsAndPerDimensionBounds(t *testing.T) {
	path := writeIni(t, `
[problem]
dimension = 2
lower_bounds = -1 -2
upper_bounds = 1 2
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{-1, -2}, s.RangeLo)
	assert.Equal(t, []float64{1, 2}, s.RangeHi)
	assert.Equal(t, DefaultGoal, s.Goal)
	assert.Equal(t, CalcSwarmSize(2), s.Size)
	assert.Equal(t, NeighborhoodRing, s.Neighborhood)
	assert.Equal(t, InertiaLinearDecreasing, s.Inertia)
	assert.Equal(t, BoundaryClamp, s.Boundary)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.ini"))
		assert.Error(t, err)
	})

	t.Run("missing dimension", func(t *testing.T) {
		_, err := LoadSettings(writeIni(t, "[problem]\nrange_lo = -1\nrange_hi = 1\n"))
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "dimension", cfgErr.Field)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := LoadSettings(writeIni(t, "[problem]\ndimension = 1\nrange_lo = -1\nrange_hi = 1\n[neighborhood]\nstrategy = star\n"))
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("bounds length mismatch", func(t *testing.T) {
		_, err := LoadSettings(writeIni(t, "[problem]\ndimension = 3\nlower_bounds = -1 -1\nupper_bounds = 1 1 1\n"))
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("default range is empty", func(t *testing.T) {
		_, err := LoadSettings(writeIni(t, "[problem]\ndimension = 2\n"))
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}

func TestCleanIniString(t *testing.T) {
	assert.Equal(t, "ring", cleanIniString("  ring ; comment"))
	assert.Equal(t, "lin_dec", cleanIniString("lin_dec # comment"))
	assert.Equal(t, "clamp", cleanIniString("clamp"))
}
