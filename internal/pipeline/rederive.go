package pipeline

import (
	"github.com/docsort/docsort/internal/assign"
	"github.com/docsort/docsort/internal/classify"
	"github.com/docsort/docsort/internal/model"
)

// Rederive recomputes decisions over an already-processed set after the
// override table changed, without re-reading any document content. Files
// whose digest gained an override are forced to its category; files whose
// override was removed fall back to their stored automated result.
// Duplicates follow their first-seen entry, and path assignment is re-run
// over the full set.
func Rederive(files []*model.ProcessedFile, overrides map[string]string, classifier *classify.Classifier, opts assign.Options) {
	primaries := make(map[string]*model.ProcessedFile)
	for _, f := range files {
		if f.Digest != "" && f.Decision != model.DecisionDuplicate {
			primaries[f.Digest] = f
		}
	}

	for _, f := range files {
		if f.Digest == "" || f.Decision == model.DecisionDuplicate {
			continue
		}
		if category, ok := overrides[f.Digest]; ok {
			f.ApplyResult(classifier.OverrideResult(category))
			f.OverrideApplied = true
		} else if f.OverrideApplied {
			f.ApplyResult(f.Auto)
			f.OverrideApplied = f.Auto.Reason == model.ReasonOverride
		}
	}

	for _, f := range files {
		if f.Decision != model.DecisionDuplicate {
			continue
		}
		first, ok := primaries[f.Digest]
		if !ok {
			continue
		}
		f.Category = first.Category
		f.Candidate = first.Candidate
		f.Score = first.Score
		f.Scores = cloneScores(first.Scores)
		f.OverrideApplied = first.OverrideApplied
	}

	assign.Paths(files, opts)
}
