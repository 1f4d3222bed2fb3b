package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docsort/docsort/internal/model"
)

func TestRenderFiles(t *testing.T) {
	var buf bytes.Buffer
	RenderFiles(&buf, []*model.ProcessedFile{
		{
			SourcePath: "in/deed.pdf",
			Decision:   model.DecisionAssigned,
			Category:   "schedule-a-real-estate",
			Score:      42.5,
			Reason:     model.ReasonKeywordScore,
			OutputPath: "SORTED/schedule-a-real-estate/deed.pdf",
		},
		{
			SourcePath: "in/odd.pdf",
			Decision:   model.DecisionReview,
			Candidate:  "schedule-b-bank-accounts",
			Reason:     model.ReasonLowConfidence,
			OutputPath: "REVIEW/schedule-b-bank-accounts/odd.pdf",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "in/deed.pdf")
	assert.Contains(t, out, "schedule-a-real-estate")
	assert.Contains(t, out, "42.5")
	assert.Contains(t, out, "schedule-b-bank-accounts", "review rows show the candidate")
}

func TestRenderDuplicateGroupsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderDuplicateGroups(&buf, nil)
	assert.Contains(t, buf.String(), "No duplicate groups")
}

func TestRenderClusters(t *testing.T) {
	var buf bytes.Buffer
	RenderClusters(&buf, []model.Cluster{
		{
			Tokens: []string{"statement", "account"},
			Files: []*model.ProcessedFile{
				{SourcePath: "in/a.pdf"},
				{SourcePath: "in/b.pdf"},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "in/a.pdf, in/b.pdf")
	assert.Contains(t, out, "statement account")
}

func TestRenderOverrides(t *testing.T) {
	var buf bytes.Buffer
	RenderOverrides(&buf, []model.ReviewOverride{
		{
			Digest:    "aaaabbbbccccddddeeee",
			Category:  "schedule-c-stocks-bonds",
			UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "aaaabbbbccccdddd…")
	assert.Contains(t, out, "schedule-c-stocks-bonds")
	assert.Contains(t, out, "2026-03-01")
}
