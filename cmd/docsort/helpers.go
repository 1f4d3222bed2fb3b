package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/docsort/docsort/internal/classify"
	"github.com/docsort/docsort/internal/config"
	"github.com/docsort/docsort/internal/schedule"
	"github.com/docsort/docsort/internal/service"
	"github.com/docsort/docsort/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/docsort/docsort.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadClassifier compiles the stored schedule configuration into a
// classifier, applying any threshold settings from the config file.
func loadClassifier(ctx context.Context, store service.Storage) (*classify.Classifier, error) {
	cfg, err := store.GetScheduleConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule configuration: %w", err)
	}

	compiled, err := schedule.Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schedule configuration: %w", err)
	}

	thresholds := classify.DefaultThresholds()
	if v := viper.GetFloat64("classify.score_floor"); v > 0 {
		thresholds.ScoreFloor = v
	}
	if v := viper.GetFloat64("classify.low_confidence_margin"); v > 0 {
		thresholds.LowConfidenceMargin = v
	}
	if v := viper.GetInt("classify.min_text_chars"); v > 0 {
		thresholds.MinTextChars = v
	}
	if v := viper.GetInt("classify.min_text_items"); v > 0 {
		thresholds.MinTextItems = v
	}

	return classify.NewWithThresholds(compiled, thresholds), nil
}

// loadOverrideMap reads the standing overrides into a digest-keyed map.
func loadOverrideMap(ctx context.Context, store service.Storage) (map[string]string, error) {
	overrides, err := store.GetOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load review overrides: %w", err)
	}
	byDigest := make(map[string]string, len(overrides))
	for _, o := range overrides {
		byDigest[o.Digest] = o.Category
	}
	return byDigest, nil
}
