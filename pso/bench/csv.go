package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{
	"function", "dim", "trials", "converged", "convergence_rate",
	"best", "mean", "std", "median", "worst",
	"mean_steps", "mean_evals", "mean_time_ms",
}

// WriteCSV writes one row per report.
func WriteCSV(w io.Writer, reports []Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range reports {
		row := []string{
			r.Function,
			strconv.Itoa(r.Dim),
			strconv.Itoa(r.Trials),
			strconv.Itoa(r.Converged),
			formatFloat(r.ConvergenceRate()),
			formatFloat(r.Fitness.Best),
			formatFloat(r.Fitness.Mean),
			formatFloat(r.Fitness.Std),
			formatFloat(r.Fitness.Median),
			formatFloat(r.Fitness.Worst),
			formatFloat(r.Steps.Mean),
			formatFloat(r.Evals.Mean),
			formatFloat(r.TimeMs.Mean),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates path and writes the reports to it.
func WriteCSVFile(path string, reports []Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file '%s': %w", path, err)
	}
	if err := WriteCSV(f, reports); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write csv file '%s': %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
