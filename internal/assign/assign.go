// Package assign maps processed documents to canonical relative paths within
// the export tree and disambiguates filename collisions.
package assign

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/docsort/docsort/internal/model"
)

// Options names the top-level folders of the export tree.
type Options struct {
	ExportRoot     string
	ReviewRoot     string
	DuplicatesRoot string
}

// DefaultOptions returns the standard export tree layout.
func DefaultOptions() Options {
	return Options{
		ExportRoot:     "SORTED",
		ReviewRoot:     "REVIEW",
		DuplicatesRoot: "DUPLICATES",
	}
}

// Paths assigns an output path to every file in the set. It is pure given
// the full list: files are processed in source-path order and collision
// state is scoped to this single pass, so re-running from scratch is
// idempotent and deterministic. Must be re-run in full whenever any entry's
// decision or category changes.
func Paths(files []*model.ProcessedFile, opts Options) {
	ordered := make([]*model.ProcessedFile, len(files))
	copy(ordered, files)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SourcePath < ordered[j].SourcePath
	})

	used := make(map[string]map[string]bool)

	for _, f := range ordered {
		folder := folderFor(f, opts)
		if used[folder] == nil {
			used[folder] = make(map[string]bool)
		}

		name := f.Name
		for n := 1; used[folder][name]; n++ {
			name = dupName(f.Name, n)
		}
		used[folder][name] = true

		f.OutputPath = path.Join(folder, name)
	}
}

func folderFor(f *model.ProcessedFile, opts Options) string {
	switch f.Decision {
	case model.DecisionDuplicate:
		return path.Join(opts.DuplicatesRoot, f.DigestPrefix)
	case model.DecisionReview:
		candidate := f.Candidate
		if candidate == "" {
			candidate = model.CandidateUnknown
		}
		return path.Join(opts.ReviewRoot, candidate)
	default:
		return path.Join(opts.ExportRoot, f.Category)
	}
}

// dupName inserts a __dup<N> suffix before the file extension.
func dupName(name string, n int) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s__dup%d%s", base, n, ext)
}
