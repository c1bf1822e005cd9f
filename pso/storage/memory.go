package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/baldhumanity/pso-go/pso"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string][]byte)
	return nil
}

// SaveRun stores an encoded copy so later changes to rec are not observed.
func (s *MemoryStore) SaveRun(_ context.Context, rec *pso.RunRecord) error {
	if rec == nil || rec.ID == "" {
		return errors.New("run record requires an id")
	}
	payload, err := EncodeRun(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.runs[rec.ID] = payload
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (*pso.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, false, errNotInitialized
	}
	payload, ok := s.runs[id]
	if !ok {
		return nil, false, nil
	}
	rec, err := DecodeRun(payload)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	out := make([]RunSummary, 0, len(s.runs))
	for _, payload := range s.runs {
		rec, err := DecodeRun(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) DeleteRun(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return false, errNotInitialized
	}
	_, ok := s.runs[id]
	delete(s.runs, id)
	return ok, nil
}
