package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/schedule"
)

// GetScheduleConfig returns the stored schedule configuration, or the
// built-in default when none has been saved yet.
func (s *SQLiteStorage) GetScheduleConfig(ctx context.Context) (model.ScheduleConfig, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT config FROM schedule_config WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.DefaultConfig(), nil
	}
	if err != nil {
		return model.ScheduleConfig{}, fmt.Errorf("failed to load schedule config: %w", err)
	}

	var cfg model.ScheduleConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return model.ScheduleConfig{}, fmt.Errorf("failed to decode stored schedule config: %w", err)
	}
	return cfg, nil
}

// SaveScheduleConfig persists the configuration. Callers must validate
// first; a structurally invalid configuration is rejected here as a
// safeguard so the store never adopts a partially-valid rule set.
func (s *SQLiteStorage) SaveScheduleConfig(ctx context.Context, cfg model.ScheduleConfig) error {
	if errs := schedule.Validate(cfg); len(errs) > 0 {
		return fmt.Errorf("refusing to save invalid schedule config: %s", errs[0])
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode schedule config: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedule_config (id, config, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET config = excluded.config, updated_at = CURRENT_TIMESTAMP`,
		string(raw))
	if err != nil {
		return fmt.Errorf("failed to save schedule config: %w", err)
	}
	return nil
}

// ResetScheduleConfig removes any stored configuration so reads fall back to
// the built-in default.
func (s *SQLiteStorage) ResetScheduleConfig(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM schedule_config WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to reset schedule config: %w", err)
	}
	return nil
}
