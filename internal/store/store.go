// Package store persists pipeline run history. The scoring core never
// touches it; the serving layer records each result after the fact.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrosight/agrosight/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Run is one recorded pipeline invocation.
type Run struct {
	PipelineID string
	FarmerID   string
	Success    bool
	Result     *models.PipelineResult
	CreatedAt  time.Time
}

// SaveResult records a pipeline result, serializing the full payload.
func (s *Store) SaveResult(result *models.PipelineResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO pipeline_runs (pipeline_id, farmer_id, success, result_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(pipeline_id) DO NOTHING
	`, result.PipelineID, result.FarmerID, result.Success, string(raw), time.Now().UTC())
	return err
}

// GetRun loads one recorded run by pipeline ID. Returns nil when the run
// is unknown.
func (s *Store) GetRun(pipelineID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT pipeline_id, farmer_id, success, result_json, created_at
		FROM pipeline_runs WHERE pipeline_id = ?
	`, pipelineID)

	var run Run
	var raw string
	err := row.Scan(&run.PipelineID, &run.FarmerID, &run.Success, &raw, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result models.PipelineResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("unmarshal stored result: %w", err)
	}
	run.Result = &result
	return &run, nil
}

// ListRunsByFarmer returns the most recent runs for a farmer, newest
// first.
func (s *Store) ListRunsByFarmer(farmerID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT pipeline_id, farmer_id, success, result_json, created_at
		FROM pipeline_runs
		WHERE farmer_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, farmerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var raw string
		if err := rows.Scan(&run.PipelineID, &run.FarmerID, &run.Success, &raw, &run.CreatedAt); err != nil {
			return nil, err
		}
		var result models.PipelineResult
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			run.Result = &result
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
