package model

import "time"

// ScanMetrics captures the layout-derived measurements taken while sampling a
// PDF's embedded text layer. Used to detect documents that are likely scans.
type ScanMetrics struct {
	SampledPages int `json:"sampled_pages"`
	Chars        int `json:"chars"`
	TextItems    int `json:"text_items"`
}

// ProcessedFile is one input document after pipeline processing. Digest and
// the automated classification in Auto are immutable once computed; the
// flattened decision fields and OutputPath are recomputed when overrides
// change or when paths are re-assigned over the whole set.
type ProcessedFile struct {
	Scores          map[string]float64   `json:"scores"`
	Name            string               `json:"name"`
	SourcePath      string               `json:"source_path"`
	MediaType       string               `json:"media_type"`
	Digest          string               `json:"digest"`
	DigestPrefix    string               `json:"digest_prefix"`
	Category        string               `json:"category,omitempty"`
	Candidate       string               `json:"candidate,omitempty"`
	Reason          string               `json:"reason"`
	TextSample      string               `json:"text_sample,omitempty"`
	OutputPath      string               `json:"output_path"`
	Auto            ClassificationResult `json:"auto"`
	Decision        Decision             `json:"decision"`
	Size            int64                `json:"size"`
	Score           float64              `json:"score"`
	Metrics         *ScanMetrics         `json:"metrics,omitempty"`
	OverrideApplied bool                 `json:"override_applied"`
}

// ApplyResult flattens a classification result into the file's effective
// decision fields.
func (f *ProcessedFile) ApplyResult(r ClassificationResult) {
	f.Decision = r.Decision
	f.Category = r.Category
	f.Candidate = r.Candidate
	f.Reason = r.Reason
	f.Score = r.Score
	f.Scores = r.CloneScores()
}

// ReviewOverride maps a content digest to a user-chosen category. Overrides
// persist independently of any single run so the same document content is
// resolved the same way across sessions.
type ReviewOverride struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Digest    string    `json:"digest"`
	Category  string    `json:"category"`
}

// DuplicateGroup is a derived, read-only view over processed files sharing a
// digest. Source paths are sorted ascending; the first is the retained file.
type DuplicateGroup struct {
	Digest       string   `json:"digest"`
	DigestPrefix string   `json:"digest_prefix"`
	Retained     string   `json:"retained"`
	SourcePaths  []string `json:"source_paths"`
	Others       []string `json:"others"`
	Count        int      `json:"count"`
}

// Cluster groups review-bucket files whose retained text samples share
// overlapping tokens. Presentation-only; recomputed on demand.
type Cluster struct {
	Tokens []string         `json:"tokens"`
	Files  []*ProcessedFile `json:"files"`
}

// RunRecord is one row of the processing-run audit log.
type RunRecord struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	ID         int64     `json:"id"`
	Total      int       `json:"total"`
	Completed  int       `json:"completed"`
	Duplicates int       `json:"duplicates"`
	Review     int       `json:"review"`
	Cancelled  bool      `json:"cancelled"`
}
