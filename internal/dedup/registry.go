// Package dedup tracks content digests within a single processing run so
// byte-identical documents are detected exactly once, and derives the
// duplicate-group view over a processed file set.
package dedup

import (
	"sort"
	"sync"

	"github.com/docsort/docsort/internal/model"
)

// Registry maps content digests to the first-seen processed entry within one
// run. Workers race on it, so registration is a serialized check-and-set:
// exactly one caller per digest wins first-seen.
type Registry struct {
	firstSeen map[string]*model.ProcessedFile
	mu        sync.Mutex
}

// NewRegistry creates an empty run-scoped registry.
func NewRegistry() *Registry {
	return &Registry{firstSeen: make(map[string]*model.ProcessedFile)}
}

// Register records the entry as first-seen for its digest unless another
// entry already holds it. Returns the retained first-seen entry and whether
// the caller won first-seen.
func (r *Registry) Register(entry *model.ProcessedFile) (*model.ProcessedFile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if first, ok := r.firstSeen[entry.Digest]; ok {
		return first, false
	}
	r.firstSeen[entry.Digest] = entry
	return entry, true
}

// FirstSeen returns the first-seen entry for a digest, if any.
func (r *Registry) FirstSeen(digest string) (*model.ProcessedFile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	first, ok := r.firstSeen[digest]
	return first, ok
}

// Groups derives the duplicate-group view from the current file set: one
// group per digest shared by two or more files, source paths sorted
// ascending, lowest path retained. Groups are ordered by retained path so the
// view is deterministic.
func Groups(files []*model.ProcessedFile) []model.DuplicateGroup {
	byDigest := make(map[string][]*model.ProcessedFile)
	for _, f := range files {
		if f.Digest == "" {
			continue
		}
		byDigest[f.Digest] = append(byDigest[f.Digest], f)
	}

	var groups []model.DuplicateGroup
	for digest, members := range byDigest {
		if len(members) < 2 {
			continue
		}

		paths := make([]string, len(members))
		for i, m := range members {
			paths[i] = m.SourcePath
		}
		sort.Strings(paths)

		names := make([]string, 0, len(members)-1)
		for _, p := range paths[1:] {
			names = append(names, baseName(members, p))
		}

		groups = append(groups, model.DuplicateGroup{
			Digest:       digest,
			DigestPrefix: members[0].DigestPrefix,
			Count:        len(members),
			SourcePaths:  paths,
			Retained:     baseName(members, paths[0]),
			Others:       names,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SourcePaths[0] < groups[j].SourcePaths[0]
	})

	return groups
}

func baseName(members []*model.ProcessedFile, sourcePath string) string {
	for _, m := range members {
		if m.SourcePath == sourcePath {
			return m.Name
		}
	}
	return sourcePath
}
