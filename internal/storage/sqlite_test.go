package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsort/docsort/internal/common"
	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/schedule"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err, "Failed to create storage")

	require.NoError(t, store.Migrate(context.Background()), "Failed to migrate")
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testConfig() model.ScheduleConfig {
	return model.ScheduleConfig{
		Categories: []model.CategoryDefinition{
			{
				ID:    "schedule-a-real-estate",
				Label: "Real Estate",
				Keywords: []model.WeightedTerm{
					{Term: "deed", Weight: 12},
				},
			},
			{
				ID:    "schedule-b-bank-accounts",
				Label: "Bank Accounts",
				Keywords: []model.WeightedTerm{
					{Term: "account statement", Weight: 10},
				},
			},
		},
		FilenameRules: []model.FilenameRule{
			{Pattern: `deed`, Category: "schedule-a-real-estate"},
		},
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSchemaVersionBeforeMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fresh.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestScheduleConfigDefaultsWhenUnset(t *testing.T) {
	store := createTestStorage(t)

	cfg, err := store.GetScheduleConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultConfig(), cfg)
}

func TestScheduleConfigRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	want := testConfig()
	require.NoError(t, store.SaveScheduleConfig(ctx, want))

	got, err := store.GetScheduleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Saving again overwrites rather than duplicating.
	want.Categories = want.Categories[:1]
	want.FilenameRules = nil
	require.NoError(t, store.SaveScheduleConfig(ctx, want))

	got, err = store.GetScheduleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveScheduleConfigRejectsInvalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	invalid := testConfig()
	invalid.FilenameRules[0].Category = "no-such-schedule"

	err := store.SaveScheduleConfig(ctx, invalid)
	assert.Error(t, err)

	// The stored config is untouched.
	got, err := store.GetScheduleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultConfig(), got)
}

func TestResetScheduleConfig(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveScheduleConfig(ctx, testConfig()))
	require.NoError(t, store.ResetScheduleConfig(ctx))

	got, err := store.GetScheduleConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultConfig(), got)
}

func TestOverrideCRUD(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	overrides, err := store.GetOverrides(ctx)
	require.NoError(t, err)
	assert.Empty(t, overrides)

	require.NoError(t, store.SetOverride(ctx, "bbb", "schedule-b-bank-accounts"))
	require.NoError(t, store.SetOverride(ctx, "aaa", "schedule-a-real-estate"))

	overrides, err = store.GetOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, "aaa", overrides[0].Digest, "ordered by digest")
	assert.Equal(t, "schedule-a-real-estate", overrides[0].Category)
	assert.False(t, overrides[0].CreatedAt.IsZero())

	// Updating the same digest replaces the category.
	require.NoError(t, store.SetOverride(ctx, "aaa", "schedule-b-bank-accounts"))
	overrides, err = store.GetOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, "schedule-b-bank-accounts", overrides[0].Category)

	require.NoError(t, store.RemoveOverride(ctx, "aaa"))
	overrides, err = store.GetOverrides(ctx)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "bbb", overrides[0].Digest)
}

func TestSetOverrideValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.Error(t, store.SetOverride(ctx, "", "schedule-a-real-estate"))
	assert.Error(t, store.SetOverride(ctx, "abc", ""))
}

func TestRemoveOverrideNotFound(t *testing.T) {
	store := createTestStorage(t)

	err := store.RemoveOverride(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecordAndGetRuns(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		run := &model.RunRecord{
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + 30*time.Second),
			Total:      10,
			Completed:  10 - i,
			Duplicates: i,
			Review:     2,
			Cancelled:  i == 2,
		}
		require.NoError(t, store.RecordRun(ctx, run))
		assert.Positive(t, run.ID)
	}

	runs, err := store.GetRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt), "newest first")
	assert.True(t, runs[0].Cancelled)
	assert.Equal(t, 8, runs[0].Completed)

	all, err := store.GetRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "non-positive limit falls back to the default")
}
