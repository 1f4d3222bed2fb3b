package storage

import (
	"context"
	"fmt"

	"github.com/docsort/docsort/internal/model"
)

// RecordRun appends one row to the processing-run audit log and fills in the
// generated ID.
func (s *SQLiteStorage) RecordRun(ctx context.Context, run *model.RunRecord) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, finished_at, total, completed, duplicates, review, cancelled)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.FinishedAt, run.Total, run.Completed,
		run.Duplicates, run.Review, run.Cancelled)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}
	run.ID = id
	return nil
}

// GetRuns returns the most recent audit-log entries, newest first.
func (s *SQLiteStorage) GetRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, total, completed, duplicates, review, cancelled
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.RunRecord
	for rows.Next() {
		var r model.RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Total,
			&r.Completed, &r.Duplicates, &r.Review, &r.Cancelled); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}
