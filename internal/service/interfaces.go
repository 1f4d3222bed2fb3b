// Package service defines the interfaces for the collaborators the core
// pipeline is wired with.
package service

import (
	"context"

	"github.com/docsort/docsort/internal/model"
)

// ExtractedText is the result of sampling a document's embedded text layer.
type ExtractedText struct {
	Text    string
	Metrics model.ScanMetrics
}

// TextExtractor pulls text from a PDF's embedded text layer. Implementations
// must bound the pages sampled and total characters returned, enforce their
// own step-level timeout, and fail distinctly (never silently return empty)
// on corrupt input.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*ExtractedText, error)
}

// Hasher computes a deterministic, content-only digest over document bytes.
type Hasher interface {
	Digest(data []byte) string
	Prefix(digest string) string
}

// Storage defines the contract for the persistence layer: the schedule
// configuration, standing review overrides, and the run audit log. The
// pipeline reads configuration and overrides once at run start and never
// re-reads mid-run.
type Storage interface {
	// Schedule configuration
	GetScheduleConfig(ctx context.Context) (model.ScheduleConfig, error)
	SaveScheduleConfig(ctx context.Context, cfg model.ScheduleConfig) error
	ResetScheduleConfig(ctx context.Context) error

	// Review overrides
	GetOverrides(ctx context.Context) ([]model.ReviewOverride, error)
	SetOverride(ctx context.Context, digest, category string) error
	RemoveOverride(ctx context.Context, digest string) error

	// Run audit log
	RecordRun(ctx context.Context, run *model.RunRecord) error
	GetRuns(ctx context.Context, limit int) ([]model.RunRecord, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ProgressFunc receives live pipeline progress: the monotonically increasing
// completed count, the total, and the name of a document currently being
// processed. Implementations must not block.
type ProgressFunc func(completed, total int, current string)
