package model

// Decision indicates how a processed document was resolved.
type Decision string

// Decision constants.
const (
	DecisionAssigned  Decision = "assigned"
	DecisionReview    Decision = "review"
	DecisionDuplicate Decision = "duplicate"
)

// Reason codes attached to classification results.
const (
	ReasonFilenameRule  = "filename_rule"
	ReasonKeywordScore  = "keyword_score"
	ReasonLowConfidence = "low_confidence"
	ReasonNoText        = "no_text_or_filename_rule"
	ReasonDuplicate     = "sha256_duplicate"
	ReasonOverride      = "review_override"

	// Prefixes for reasons that embed run-time detail.
	ReasonPrefixScanned         = "likely_scanned_pdf"
	ReasonPrefixParseError      = "pdf_parse_error"
	ReasonPrefixProcessingError = "processing_error"
)

// ClassificationResult is the outcome of classifying a single document.
// Scores always holds exactly one non-negative entry per configured category.
// Results are never mutated; an override produces a new result rather than
// editing this one.
type ClassificationResult struct {
	Scores    map[string]float64 `json:"scores"`
	Category  string             `json:"category,omitempty"`
	Candidate string             `json:"candidate,omitempty"`
	Reason    string             `json:"reason"`
	Decision  Decision           `json:"decision"`
	Score     float64            `json:"score"`
}

// CloneScores returns a copy of the score vector so callers can share results
// without aliasing the underlying map.
func (r ClassificationResult) CloneScores() map[string]float64 {
	scores := make(map[string]float64, len(r.Scores))
	for k, v := range r.Scores {
		scores[k] = v
	}
	return scores
}
