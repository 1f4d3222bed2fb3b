// Package classify implements the keyword-scored decision procedure that
// assigns a document to a schedule or routes it to human review.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/normalize"
	"github.com/docsort/docsort/internal/schedule"
)

// Default decision constants. The floor is the minimum trusted score; the
// margin is the minimum gap between the best and second-best category.
const (
	DefaultScoreFloor          = 18.0
	DefaultLowConfidenceMargin = 6.0
	DefaultMinTextChars        = 250
	DefaultMinTextItems        = 30
)

// Thresholds configures the scanned-document checks and confidence cutoffs.
type Thresholds struct {
	ScoreFloor          float64
	LowConfidenceMargin float64
	MinTextChars        int
	MinTextItems        int
}

// DefaultThresholds returns the standard decision thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ScoreFloor:          DefaultScoreFloor,
		LowConfidenceMargin: DefaultLowConfidenceMargin,
		MinTextChars:        DefaultMinTextChars,
		MinTextItems:        DefaultMinTextItems,
	}
}

// Input carries everything the decision procedure needs for one document.
// Metrics is nil when no page sampling took place (non-PDFs, extraction
// skipped).
type Input struct {
	Filename string
	Text     string
	Metrics  *model.ScanMetrics
	IsPDF    bool
}

// Classifier evaluates documents against a compiled schedule configuration.
type Classifier struct {
	config     *schedule.Compiled
	thresholds Thresholds
}

// New creates a classifier with default thresholds.
func New(config *schedule.Compiled) *Classifier {
	return NewWithThresholds(config, DefaultThresholds())
}

// NewWithThresholds creates a classifier with custom thresholds.
func NewWithThresholds(config *schedule.Compiled, thresholds Thresholds) *Classifier {
	return &Classifier{config: config, thresholds: thresholds}
}

// Classify runs the decision procedure. It is pure and total: identical
// inputs always produce identical results, and no input is an error — absent
// text, absent matches, and absent categories all resolve to review.
//
// Precedence, each step short-circuiting the ones below:
//  1. filename rule match
//  2. likely-scanned detection (sampled PDFs only)
//  3. empty extracted text
//  4. keyword scoring with floor and margin checks
func (c *Classifier) Classify(input Input) model.ClassificationResult {
	if category, ok := c.config.MatchFilename(input.Filename); ok {
		scores := c.zeroScores()
		scores[category] = c.thresholds.ScoreFloor
		return model.ClassificationResult{
			Decision: model.DecisionAssigned,
			Category: category,
			Reason:   model.ReasonFilenameRule,
			Score:    c.thresholds.ScoreFloor,
			Scores:   scores,
		}
	}

	if input.IsPDF && input.Metrics != nil && input.Metrics.SampledPages > 0 {
		if input.Metrics.Chars < c.thresholds.MinTextChars || input.Metrics.TextItems < c.thresholds.MinTextItems {
			return model.ClassificationResult{
				Decision:  model.DecisionReview,
				Candidate: model.CandidateUnknown,
				Reason: fmt.Sprintf("%s:chars=%d,items=%d,pages=%d",
					model.ReasonPrefixScanned,
					input.Metrics.Chars,
					input.Metrics.TextItems,
					input.Metrics.SampledPages),
				Scores: c.zeroScores(),
			}
		}
	}

	if strings.TrimSpace(input.Text) == "" {
		return model.ClassificationResult{
			Decision:  model.DecisionReview,
			Candidate: model.CandidateUnknown,
			Reason:    model.ReasonNoText,
			Scores:    c.zeroScores(),
		}
	}

	return c.scoreKeywords(input.Text)
}

// scoreKeywords computes the per-category score vector and applies the floor
// and margin checks. Ties rank by declaration order; that ordering is a
// contract, not an artifact.
func (c *Classifier) scoreKeywords(text string) model.ClassificationResult {
	normalized := normalize.Normalize(text)

	scores := make(map[string]float64, len(c.config.Categories))
	ranked := make([]int, len(c.config.Categories))
	for i, cat := range c.config.Categories {
		score := 0.0
		for _, wt := range cat.Keywords {
			score += float64(normalize.CountOccurrences(normalized, wt.Term)) * wt.Weight
		}
		for _, wt := range cat.SmallTerms {
			score += float64(normalize.CountOccurrences(normalized, wt.Term)) * wt.Weight
		}
		scores[cat.ID] = score
		ranked[i] = i
	}

	if len(c.config.Categories) == 0 {
		return model.ClassificationResult{
			Decision:  model.DecisionReview,
			Candidate: model.CandidateUnknown,
			Reason:    model.ReasonLowConfidence,
			Scores:    scores,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[c.config.Categories[ranked[i]].ID] > scores[c.config.Categories[ranked[j]].ID]
	})

	top := c.config.Categories[ranked[0]].ID
	best := scores[top]
	runnerUp := 0.0
	if len(ranked) > 1 {
		runnerUp = scores[c.config.Categories[ranked[1]].ID]
	}
	margin := best - runnerUp

	if best < c.thresholds.ScoreFloor || margin < c.thresholds.LowConfidenceMargin {
		return model.ClassificationResult{
			Decision:  model.DecisionReview,
			Candidate: top,
			Reason:    model.ReasonLowConfidence,
			Score:     best,
			Scores:    scores,
		}
	}

	return model.ClassificationResult{
		Decision: model.DecisionAssigned,
		Category: top,
		Reason:   model.ReasonKeywordScore,
		Score:    best,
		Scores:   scores,
	}
}

// OverrideResult builds the result superimposed by a standing manual
// override: assigned to the override target with the floor score on that
// category and zero elsewhere.
func (c *Classifier) OverrideResult(category string) model.ClassificationResult {
	scores := c.zeroScores()
	scores[category] = c.thresholds.ScoreFloor
	return model.ClassificationResult{
		Decision: model.DecisionAssigned,
		Category: category,
		Reason:   model.ReasonOverride,
		Score:    c.thresholds.ScoreFloor,
		Scores:   scores,
	}
}

// ErrorResult resolves a per-document failure to a review outcome so a bad
// document never aborts the run.
func (c *Classifier) ErrorResult(reasonPrefix string, err error) model.ClassificationResult {
	return model.ClassificationResult{
		Decision:  model.DecisionReview,
		Candidate: model.CandidateUnknown,
		Reason:    fmt.Sprintf("%s:%v", reasonPrefix, err),
		Scores:    c.zeroScores(),
	}
}

// Thresholds returns the thresholds this classifier decides with.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

func (c *Classifier) zeroScores() map[string]float64 {
	scores := make(map[string]float64, len(c.config.Categories))
	for _, cat := range c.config.Categories {
		scores[cat.ID] = 0
	}
	return scores
}
