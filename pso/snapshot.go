package pso

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// RunRecord is the archived form of a finished run.
type RunRecord struct {
	ID        string
	Objective string
	CreatedAt time.Time
	Settings  Settings
	Result    Result
}

// NewRunRecord captures settings and result under a fresh random ID.
func NewRunRecord(objective string, settings *Settings, res *Result) *RunRecord {
	rec := &RunRecord{
		ID:        uuid.NewString(),
		Objective: objective,
		CreatedAt: time.Now().UTC(),
	}
	if settings != nil {
		rec.Settings = *settings.Clone()
	}
	if res != nil {
		rec.Result = *res
		rec.Result.Position = append([]float64(nil), res.Position...)
		rec.Result.History = append([]float64(nil), res.History...)
	}
	return rec
}

// WriteRun encodes rec as a zstd-compressed gob stream.
func WriteRun(w io.Writer, rec *RunRecord) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := gob.NewEncoder(enc).Encode(rec); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to encode run %s: %w", rec.ID, err)
	}
	return enc.Close()
}

// ReadRun decodes a stream written by WriteRun.
func ReadRun(r io.Reader) (*RunRecord, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	rec := &RunRecord{}
	if err := gob.NewDecoder(dec).Decode(rec); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return rec, nil
}

// SaveRun writes rec to filePath, replacing any existing file.
func SaveRun(filePath string, rec *RunRecord) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file '%s': %w", filePath, err)
	}
	if err := WriteRun(file, rec); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// LoadRun reads a snapshot written by SaveRun.
func LoadRun(filePath string) (*RunRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file '%s': %w", filePath, err)
	}
	defer file.Close()

	rec, err := ReadRun(file)
	if err != nil {
		return nil, fmt.Errorf("snapshot '%s': %w", filePath, err)
	}
	return rec, nil
}
