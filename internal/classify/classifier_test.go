package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/schedule"
)

func testClassifier(t *testing.T) *Classifier {
	t.Helper()

	cfg := model.ScheduleConfig{
		Categories: []model.CategoryDefinition{
			{
				ID:    "real-estate",
				Label: "Real Estate",
				Keywords: []model.WeightedTerm{
					{Term: "deed", Weight: 10},
					{Term: "parcel", Weight: 6},
				},
				SmallTerms: []model.WeightedTerm{
					{Term: "lot", Weight: 2},
				},
			},
			{
				ID:    "insurance",
				Label: "Insurance",
				Keywords: []model.WeightedTerm{
					{Term: "policy", Weight: 8},
					{Term: "beneficiary", Weight: 8},
				},
			},
		},
		FilenameRules: []model.FilenameRule{
			{Pattern: `\bdeed\b`, Category: "real-estate"},
		},
	}
	require.Empty(t, schedule.Validate(cfg))

	compiled, err := schedule.Compile(cfg)
	require.NoError(t, err)

	return New(compiled)
}

func TestClassifyFilenameRulePrecedence(t *testing.T) {
	c := testClassifier(t)

	// Text scores heavily for insurance, but the filename rule is
	// authoritative and skips scoring entirely.
	result := c.Classify(Input{
		Filename: "Deed_123_Main_St.pdf",
		Text:     strings.Repeat("policy beneficiary ", 20),
		IsPDF:    true,
	})

	assert.Equal(t, model.DecisionAssigned, result.Decision)
	assert.Equal(t, "real-estate", result.Category)
	assert.Equal(t, model.ReasonFilenameRule, result.Reason)
	assert.Equal(t, DefaultScoreFloor, result.Score)
	assert.Equal(t, DefaultScoreFloor, result.Scores["real-estate"])
	assert.Equal(t, 0.0, result.Scores["insurance"])
}

func TestClassifyLikelyScannedPrecedence(t *testing.T) {
	c := testClassifier(t)

	// Sparse sampled text would still score above the floor, but the
	// scanned check fires first.
	result := c.Classify(Input{
		Filename: "scan0001.pdf",
		Text:     "deed deed deed",
		IsPDF:    true,
		Metrics:  &model.ScanMetrics{SampledPages: 3, Chars: 42, TextItems: 5},
	})

	assert.Equal(t, model.DecisionReview, result.Decision)
	assert.Equal(t, model.CandidateUnknown, result.Candidate)
	assert.True(t, strings.HasPrefix(result.Reason, model.ReasonPrefixScanned))
	assert.Contains(t, result.Reason, "chars=42")
	assert.Contains(t, result.Reason, "items=5")
	assert.Contains(t, result.Reason, "pages=3")
	assert.Equal(t, 0.0, result.Score)
	for _, score := range result.Scores {
		assert.Equal(t, 0.0, score)
	}
}

func TestClassifyScannedCheckSkippedWithoutSampling(t *testing.T) {
	c := testClassifier(t)

	// No sampled pages: the scanned check must not fire.
	result := c.Classify(Input{
		Filename: "notes.pdf",
		Text:     strings.Repeat("deed parcel ", 10),
		IsPDF:    true,
		Metrics:  &model.ScanMetrics{SampledPages: 0},
	})

	assert.Equal(t, model.DecisionAssigned, result.Decision)
	assert.Equal(t, "real-estate", result.Category)
}

func TestClassifyEmptyText(t *testing.T) {
	c := testClassifier(t)

	result := c.Classify(Input{
		Filename: "unlabeled.pdf",
		Text:     "   \n\t ",
		IsPDF:    true,
	})

	assert.Equal(t, model.DecisionReview, result.Decision)
	assert.Equal(t, model.CandidateUnknown, result.Candidate)
	assert.Equal(t, model.ReasonNoText, result.Reason)
	assert.Equal(t, 0.0, result.Score)
}

func TestClassifyKeywordScoring(t *testing.T) {
	c := testClassifier(t)

	tests := []struct {
		name          string
		text          string
		wantDecision  model.Decision
		wantCategory  string
		wantCandidate string
		wantReason    string
	}{
		{
			name:         "clear winner above floor and margin",
			text:         strings.Repeat("deed parcel lot ", 5),
			wantDecision: model.DecisionAssigned,
			wantCategory: "real-estate",
			wantReason:   model.ReasonKeywordScore,
		},
		{
			name:          "below floor goes to review",
			text:          "deed",
			wantDecision:  model.DecisionReview,
			wantCandidate: "real-estate",
			wantReason:    model.ReasonLowConfidence,
		},
		{
			name: "narrow margin goes to review with candidate",
			// real-estate 2*10=20, insurance 2*8=16: margin 4 < 6.
			text:          "deed deed policy policy",
			wantDecision:  model.DecisionReview,
			wantCandidate: "real-estate",
			wantReason:    model.ReasonLowConfidence,
		},
		{
			name: "tie resolves to declaration order",
			// real-estate 4*10=40, insurance 5*8=40.
			text:          "deed deed deed deed policy policy policy policy policy",
			wantDecision:  model.DecisionReview,
			wantCandidate: "real-estate",
			wantReason:    model.ReasonLowConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(Input{Filename: "unmatched.pdf", Text: tt.text, IsPDF: true})
			assert.Equal(t, tt.wantDecision, result.Decision)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantCandidate, result.Candidate)
			assert.Equal(t, tt.wantReason, result.Reason)
		})
	}
}

func TestClassifyScoresExhaustiveAndNonNegative(t *testing.T) {
	c := testClassifier(t)

	inputs := []Input{
		{Filename: "Deed.pdf", Text: "deed", IsPDF: true},
		{Filename: "x.pdf", Text: "", IsPDF: true},
		{Filename: "x.pdf", Text: "nothing relevant here", IsPDF: true},
		{Filename: "x.pdf", Text: "deed", IsPDF: true, Metrics: &model.ScanMetrics{SampledPages: 1, Chars: 10, TextItems: 2}},
	}

	for _, input := range inputs {
		result := c.Classify(input)
		assert.Len(t, result.Scores, 2)
		assert.Contains(t, result.Scores, "real-estate")
		assert.Contains(t, result.Scores, "insurance")
		for id, score := range result.Scores {
			assert.GreaterOrEqual(t, score, 0.0, "category %s", id)
		}
		assert.Contains(t, []model.Decision{model.DecisionAssigned, model.DecisionReview}, result.Decision)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := testClassifier(t)

	input := Input{
		Filename: "statement-2023.pdf",
		Text:     "deed parcel policy lot deed",
		IsPDF:    true,
		Metrics:  &model.ScanMetrics{SampledPages: 2, Chars: 900, TextItems: 120},
	}

	first := c.Classify(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(input))
	}
}

func TestClassifyNoCategories(t *testing.T) {
	compiled, err := schedule.Compile(model.ScheduleConfig{})
	require.NoError(t, err)
	c := New(compiled)

	result := c.Classify(Input{Filename: "x.pdf", Text: "any text at all", IsPDF: true})
	assert.Equal(t, model.DecisionReview, result.Decision)
	assert.Equal(t, model.CandidateUnknown, result.Candidate)
	assert.Empty(t, result.Scores)
}

func TestClassifyCustomThresholds(t *testing.T) {
	cfg := model.ScheduleConfig{
		Categories: []model.CategoryDefinition{
			{ID: "only", Label: "Only", Keywords: []model.WeightedTerm{{Term: "deed", Weight: 10}}},
		},
	}
	compiled, err := schedule.Compile(cfg)
	require.NoError(t, err)

	c := NewWithThresholds(compiled, Thresholds{
		ScoreFloor:          5,
		LowConfidenceMargin: 1,
		MinTextChars:        10,
		MinTextItems:        1,
	})

	// Single category: runner-up is 0, margin equals best.
	result := c.Classify(Input{Filename: "x.pdf", Text: "deed", IsPDF: false})
	assert.Equal(t, model.DecisionAssigned, result.Decision)
	assert.Equal(t, "only", result.Category)
	assert.Equal(t, 10.0, result.Score)
}

func TestOverrideResult(t *testing.T) {
	c := testClassifier(t)

	result := c.OverrideResult("insurance")
	assert.Equal(t, model.DecisionAssigned, result.Decision)
	assert.Equal(t, "insurance", result.Category)
	assert.Equal(t, model.ReasonOverride, result.Reason)
	assert.Equal(t, DefaultScoreFloor, result.Score)
	assert.Equal(t, DefaultScoreFloor, result.Scores["insurance"])
	assert.Equal(t, 0.0, result.Scores["real-estate"])
}

func TestErrorResult(t *testing.T) {
	c := testClassifier(t)

	result := c.ErrorResult(model.ReasonPrefixParseError, assert.AnError)
	assert.Equal(t, model.DecisionReview, result.Decision)
	assert.Equal(t, model.CandidateUnknown, result.Candidate)
	assert.True(t, strings.HasPrefix(result.Reason, model.ReasonPrefixParseError+":"))
}
