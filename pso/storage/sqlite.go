package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/baldhumanity/pso-go/pso"
)

// createdAtLayout is fixed width so text order matches time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, rec *pso.RunRecord) error {
	if rec == nil || rec.ID == "" {
		return errors.New("run record requires an id")
	}
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeRun(rec)
	if err != nil {
		return err
	}

	// fitness is informational; NaN is stored as NULL
	var fitness sql.NullFloat64
	if f := rec.Result.Fitness; !math.IsNaN(f) {
		fitness = sql.NullFloat64{Float64: f, Valid: true}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, objective, created_at, state, fitness, steps, codec_version, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			objective = excluded.objective,
			created_at = excluded.created_at,
			state = excluded.state,
			fitness = excluded.fitness,
			steps = excluded.steps,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, rec.ID, rec.Objective, rec.CreatedAt.UTC().Format(createdAtLayout),
		rec.Result.State.String(), fitness, rec.Result.Steps, CurrentCodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*pso.RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	rec, err := DecodeRun(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode run %s: %w", id, err)
	}
	return rec, true, nil
}

// ListRuns reads only the summary columns.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]RunSummary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, objective, created_at, state, fitness, steps
		FROM runs
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			sum     RunSummary
			created string
			fitness sql.NullFloat64
		)
		if err := rows.Scan(&sum.ID, &sum.Objective, &created, &sum.State, &fitness, &sum.Steps); err != nil {
			return nil, err
		}
		sum.CreatedAt, err = time.Parse(createdAtLayout, created)
		if err != nil {
			return nil, fmt.Errorf("run %s: invalid created_at %q: %w", sum.ID, created, err)
		}
		if fitness.Valid {
			sum.Fitness = fitness.Float64
		} else {
			sum.Fitness = math.NaN()
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) (bool, error) {
	db, err := s.getDB()
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			objective TEXT NOT NULL,
			created_at TEXT NOT NULL,
			state TEXT NOT NULL,
			fitness REAL,
			steps INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at, id);
	`)
	return err
}
