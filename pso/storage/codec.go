package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/baldhumanity/pso-go/pso"
)

const CurrentCodecVersion = 1

var ErrVersionMismatch = errors.New("record version mismatch")

// number is a float64 that survives JSON when it is infinite or NaN.
// Finite values encode as numbers, the rest as the strings "+Inf", "-Inf" and "NaN".
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (n *number) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}
		*n = number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = number(v)
	return nil
}

func toNumbers(vs []float64) []number {
	if vs == nil {
		return nil
	}
	out := make([]number, len(vs))
	for i, v := range vs {
		out[i] = number(v)
	}
	return out
}

func fromNumbers(ns []number) []float64 {
	if ns == nil {
		return nil
	}
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = float64(n)
	}
	return out
}

type settingsDoc struct {
	Dim              int      `json:"dim"`
	RangeLo          []number `json:"range_lo"`
	RangeHi          []number `json:"range_hi"`
	Goal             number   `json:"goal"`
	Size             int      `json:"size"`
	PrintEvery       int      `json:"print_every"`
	Steps            int      `json:"steps"`
	C1               number   `json:"c1"`
	C2               number   `json:"c2"`
	W                number   `json:"w"`
	WMax             number   `json:"w_max"`
	WMin             number   `json:"w_min"`
	Boundary         string   `json:"boundary"`
	Neighborhood     string   `json:"neighborhood"`
	NeighborhoodSize int      `json:"nhood_size"`
	Inertia          string   `json:"inertia"`
	Seed             int64    `json:"seed"`
}

type resultDoc struct {
	Position              []number `json:"position"`
	Fitness               number   `json:"fitness"`
	State                 string   `json:"state"`
	Steps                 int      `json:"steps"`
	Evaluations           int      `json:"evaluations"`
	StepsSinceImprovement int      `json:"steps_since_improvement"`
	History               []number `json:"history,omitempty"`
	DurationNanos         int64    `json:"duration_ns"`
}

type runDoc struct {
	CodecVersion int         `json:"codec_version"`
	ID           string      `json:"id"`
	Objective    string      `json:"objective"`
	CreatedAt    time.Time   `json:"created_at"`
	Settings     settingsDoc `json:"settings"`
	Result       resultDoc   `json:"result"`
}

func EncodeRun(rec *pso.RunRecord) ([]byte, error) {
	s, r := rec.Settings, rec.Result
	doc := runDoc{
		CodecVersion: CurrentCodecVersion,
		ID:           rec.ID,
		Objective:    rec.Objective,
		CreatedAt:    rec.CreatedAt,
		Settings: settingsDoc{
			Dim:              s.Dim,
			RangeLo:          toNumbers(s.RangeLo),
			RangeHi:          toNumbers(s.RangeHi),
			Goal:             number(s.Goal),
			Size:             s.Size,
			PrintEvery:       s.PrintEvery,
			Steps:            s.Steps,
			C1:               number(s.C1),
			C2:               number(s.C2),
			W:                number(s.W),
			WMax:             number(s.WMax),
			WMin:             number(s.WMin),
			Boundary:         s.Boundary.String(),
			Neighborhood:     s.Neighborhood.String(),
			NeighborhoodSize: s.NeighborhoodSize,
			Inertia:          s.Inertia.String(),
			Seed:             s.Seed,
		},
		Result: resultDoc{
			Position:              toNumbers(r.Position),
			Fitness:               number(r.Fitness),
			State:                 r.State.String(),
			Steps:                 r.Steps,
			Evaluations:           r.Evaluations,
			StepsSinceImprovement: r.StepsSinceImprovement,
			History:               toNumbers(r.History),
			DurationNanos:         r.Duration.Nanoseconds(),
		},
	}
	return json.Marshal(doc)
}

func DecodeRun(data []byte) (*pso.RunRecord, error) {
	var doc runDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.CodecVersion != CurrentCodecVersion {
		return nil, fmt.Errorf("%w: codec=%d", ErrVersionMismatch, doc.CodecVersion)
	}

	boundary, err := pso.ParseBoundary(doc.Settings.Boundary)
	if err != nil {
		return nil, err
	}
	nhood, err := pso.ParseNeighborhood(doc.Settings.Neighborhood)
	if err != nil {
		return nil, err
	}
	inertia, err := pso.ParseInertia(doc.Settings.Inertia)
	if err != nil {
		return nil, err
	}
	state, err := parseState(doc.Result.State)
	if err != nil {
		return nil, err
	}

	s := doc.Settings
	r := doc.Result
	return &pso.RunRecord{
		ID:        doc.ID,
		Objective: doc.Objective,
		CreatedAt: doc.CreatedAt,
		Settings: pso.Settings{
			Dim:              s.Dim,
			RangeLo:          fromNumbers(s.RangeLo),
			RangeHi:          fromNumbers(s.RangeHi),
			Goal:             float64(s.Goal),
			Size:             s.Size,
			PrintEvery:       s.PrintEvery,
			Steps:            s.Steps,
			C1:               float64(s.C1),
			C2:               float64(s.C2),
			W:                float64(s.W),
			WMax:             float64(s.WMax),
			WMin:             float64(s.WMin),
			Boundary:         boundary,
			Neighborhood:     nhood,
			NeighborhoodSize: s.NeighborhoodSize,
			Inertia:          inertia,
			Seed:             s.Seed,
		},
		Result: pso.Result{
			Position:              fromNumbers(r.Position),
			Fitness:               float64(r.Fitness),
			State:                 state,
			Steps:                 r.Steps,
			Evaluations:           r.Evaluations,
			StepsSinceImprovement: r.StepsSinceImprovement,
			History:               fromNumbers(r.History),
			Duration:              time.Duration(r.DurationNanos),
		},
	}, nil
}

func parseState(name string) (pso.State, error) {
	for _, st := range []pso.State{
		pso.StateInitializing,
		pso.StateRunning,
		pso.StateConverged,
		pso.StateExhausted,
		pso.StateCancelled,
	} {
		if st.String() == name {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown run state: %s", name)
}
