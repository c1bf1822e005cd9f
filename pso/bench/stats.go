package bench

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a sample. Std is the sample standard deviation.
type Stats struct {
	N      int
	Best   float64
	Worst  float64
	Mean   float64
	Std    float64
	Median float64
}

// CalcStats summarizes values. An empty sample yields N == 0 and NaN fields.
func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		nan := math.NaN()
		s.Best, s.Worst, s.Mean, s.Std, s.Median = nan, nan, nan, nan, nan
		return s
	}

	s.Best = floats.Min(values)
	s.Worst = floats.Max(values)
	if s.N < 2 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}
	s.Median = median(values)
	return s
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}
