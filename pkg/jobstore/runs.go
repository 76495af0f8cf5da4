package jobstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Run is one recorded correlation job execution. MatchesJSON holds the
// caller's own encoding of the matches produced (kept opaque here so
// jobstore does not need to know the correlate package's types).
type Run struct {
	ID          string
	JobID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	MatchCount  int
	MissCount   int
	MatchesJSON json.RawMessage
}

// RecordRun inserts one job run record.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO job_runs (id, job_id, started_at, finished_at, match_count, miss_count, matches_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.JobID, run.StartedAt, run.FinishedAt, run.MatchCount, run.MissCount, string(run.MatchesJSON))
	if err != nil {
		return fmt.Errorf("jobstore: record run: %w", err)
	}
	return nil
}

// ListRuns returns every recorded run for jobID, most recent first.
func (s *Store) ListRuns(ctx context.Context, jobID string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, started_at, finished_at, match_count, miss_count, matches_json
		FROM job_runs
		WHERE job_id = ?
		ORDER BY started_at DESC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("jobstore: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("jobstore: iterate runs: %w", err)
	}
	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}

// GetRun retrieves a single run by ID. Returns sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, job_id, started_at, finished_at, match_count, miss_count, matches_json
		FROM job_runs
		WHERE id = ?
	`, id)

	var run Run
	var matchesJSON string
	if err := row.Scan(&run.ID, &run.JobID, &run.StartedAt, &run.FinishedAt, &run.MatchCount, &run.MissCount, &matchesJSON); err != nil {
		return Run{}, err
	}
	run.MatchesJSON = json.RawMessage(matchesJSON)
	return run, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var matchesJSON string
	if err := rows.Scan(&run.ID, &run.JobID, &run.StartedAt, &run.FinishedAt, &run.MatchCount, &run.MissCount, &matchesJSON); err != nil {
		return Run{}, fmt.Errorf("jobstore: scan run: %w", err)
	}
	run.MatchesJSON = json.RawMessage(matchesJSON)
	return run, nil
}
