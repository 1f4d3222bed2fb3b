// Package cluster groups unresolved review documents by lexical token
// overlap so a human can triage similar documents together. Output is
// presentation-only and recomputed from the current review subset on demand.
package cluster

import (
	"strings"

	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/normalize"
)

const (
	// TokenCap bounds both a file's token list and a cluster's
	// accumulated token set.
	TokenCap = 50
	// minSharedTokens is the overlap required to join an existing cluster.
	minSharedTokens = 2
	// minTokenLength filters out short, noisy tokens.
	minTokenLength = 4
)

// Tokens derives the capped, ordered token list for one text sample: unique
// normalized tokens longer than three characters, in document order.
func Tokens(sample string) []string {
	fields := strings.Fields(normalize.Normalize(sample))

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, TokenCap)
	for _, tok := range fields {
		if len([]rune(tok)) < minTokenLength || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
		if len(tokens) == TokenCap {
			break
		}
	}
	return tokens
}

// Eligible reports whether a processed file belongs to the clustering input:
// review-bucket files whose candidate is Unknown or whose reason is
// low_confidence.
func Eligible(f *model.ProcessedFile) bool {
	if f.Decision != model.DecisionReview {
		return false
	}
	return f.Candidate == model.CandidateUnknown || f.Reason == model.ReasonLowConfidence
}

// Clusters runs the greedy single-pass grouping over the review subset of
// the given files, in input order. A file joins the first cluster (in
// creation order) sharing at least two of its tokens; otherwise it starts a
// new cluster. Files with no eligible tokens always form singletons.
func Clusters(files []*model.ProcessedFile) []model.Cluster {
	var clusters []model.Cluster

	for _, f := range files {
		if !Eligible(f) {
			continue
		}

		tokens := Tokens(f.TextSample)
		if len(tokens) == 0 {
			clusters = append(clusters, model.Cluster{Files: []*model.ProcessedFile{f}})
			continue
		}

		joined := false
		for i := range clusters {
			if sharedCount(clusters[i].Tokens, tokens) >= minSharedTokens {
				clusters[i].Files = append(clusters[i].Files, f)
				clusters[i].Tokens = mergeTokens(clusters[i].Tokens, tokens)
				joined = true
				break
			}
		}
		if !joined {
			clusters = append(clusters, model.Cluster{
				Tokens: tokens,
				Files:  []*model.ProcessedFile{f},
			})
		}
	}

	return clusters
}

func sharedCount(clusterTokens, fileTokens []string) int {
	set := make(map[string]bool, len(clusterTokens))
	for _, tok := range clusterTokens {
		set[tok] = true
	}

	shared := 0
	for _, tok := range fileTokens {
		if set[tok] {
			shared++
		}
	}
	return shared
}

// mergeTokens unions the member tokens into the cluster set, preserving
// order and the cap.
func mergeTokens(clusterTokens, fileTokens []string) []string {
	set := make(map[string]bool, len(clusterTokens))
	for _, tok := range clusterTokens {
		set[tok] = true
	}

	merged := clusterTokens
	for _, tok := range fileTokens {
		if len(merged) >= TokenCap {
			break
		}
		if !set[tok] {
			set[tok] = true
			merged = append(merged, tok)
		}
	}
	return merged
}
