package storage

import (
	"context"
	"fmt"

	"github.com/docsort/docsort/internal/common"
	"github.com/docsort/docsort/internal/model"
)

// GetOverrides returns all standing review overrides, ordered by digest.
func (s *SQLiteStorage) GetOverrides(ctx context.Context) ([]model.ReviewOverride, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT digest, category, created_at, updated_at
		FROM review_overrides ORDER BY digest`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var overrides []model.ReviewOverride
	for rows.Next() {
		var o model.ReviewOverride
		if err := rows.Scan(&o.Digest, &o.Category, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overrides: %w", err)
	}
	return overrides, nil
}

// SetOverride stores or updates the category override for a content digest.
func (s *SQLiteStorage) SetOverride(ctx context.Context, digest, category string) error {
	if digest == "" {
		return fmt.Errorf("digest must not be empty")
	}
	if category == "" {
		return fmt.Errorf("category must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO review_overrides (digest, category) VALUES (?, ?)
		ON CONFLICT(digest) DO UPDATE SET category = excluded.category, updated_at = CURRENT_TIMESTAMP`,
		digest, category)
	if err != nil {
		return fmt.Errorf("failed to set override: %w", err)
	}
	return nil
}

// RemoveOverride deletes the override for a digest. Removal does not touch
// any in-memory run results; callers re-derive output assignment separately.
func (s *SQLiteStorage) RemoveOverride(ctx context.Context, digest string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM review_overrides WHERE digest = ?`, digest)
	if err != nil {
		return fmt.Errorf("failed to remove override: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed override: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
