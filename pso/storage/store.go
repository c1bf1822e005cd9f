package storage

import (
	"context"
	"time"

	"github.com/baldhumanity/pso-go/pso"
)

// Store persists archived solver runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, rec *pso.RunRecord) error
	GetRun(ctx context.Context, id string) (*pso.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]RunSummary, error)
	DeleteRun(ctx context.Context, id string) (bool, error)
}

// RunSummary is the listing form of a stored run, ordered by CreatedAt then ID.
type RunSummary struct {
	ID        string
	Objective string
	CreatedAt time.Time
	State     string
	Fitness   float64
	Steps     int
}

func summarize(rec *pso.RunRecord) RunSummary {
	return RunSummary{
		ID:        rec.ID,
		Objective: rec.Objective,
		CreatedAt: rec.CreatedAt,
		State:     rec.Result.State.String(),
		Fitness:   rec.Result.Fitness,
		Steps:     rec.Result.Steps,
	}
}
