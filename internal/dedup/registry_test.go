package dedup

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docsort/docsort/internal/model"
)

func TestRegistryFirstSeen(t *testing.T) {
	r := NewRegistry()

	a := &model.ProcessedFile{Name: "a.pdf", SourcePath: "a.pdf", Digest: "abc"}
	b := &model.ProcessedFile{Name: "b.pdf", SourcePath: "b.pdf", Digest: "abc"}
	c := &model.ProcessedFile{Name: "c.pdf", SourcePath: "c.pdf", Digest: "def"}

	first, isFirst := r.Register(a)
	assert.True(t, isFirst)
	assert.Same(t, a, first)

	first, isFirst = r.Register(b)
	assert.False(t, isFirst)
	assert.Same(t, a, first)

	_, isFirst = r.Register(c)
	assert.True(t, isFirst)

	got, ok := r.FirstSeen("abc")
	assert.True(t, ok)
	assert.Same(t, a, got)

	_, ok = r.FirstSeen("missing")
	assert.False(t, ok)
}

func TestRegistryConcurrentSameDigest(t *testing.T) {
	// Two documents with the same digest arriving concurrently must not
	// both register as first-seen.
	const workers = 32

	r := NewRegistry()
	var wg sync.WaitGroup
	firstCount := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry := &model.ProcessedFile{
				Name:       fmt.Sprintf("doc-%d.pdf", i),
				SourcePath: fmt.Sprintf("doc-%d.pdf", i),
				Digest:     "shared",
			}
			_, isFirst := r.Register(entry)
			firstCount <- isFirst
		}(i)
	}
	wg.Wait()
	close(firstCount)

	wins := 0
	for isFirst := range firstCount {
		if isFirst {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestGroups(t *testing.T) {
	files := []*model.ProcessedFile{
		{Name: "b.pdf", SourcePath: "inbox/b.pdf", Digest: "d1", DigestPrefix: "d1prefix"},
		{Name: "a.pdf", SourcePath: "inbox/a.pdf", Digest: "d1", DigestPrefix: "d1prefix"},
		{Name: "c.pdf", SourcePath: "inbox/c.pdf", Digest: "d1", DigestPrefix: "d1prefix"},
		{Name: "solo.pdf", SourcePath: "inbox/solo.pdf", Digest: "d2", DigestPrefix: "d2prefix"},
	}

	groups := Groups(files)
	assert.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "d1", g.Digest)
	assert.Equal(t, 3, g.Count)
	assert.Equal(t, []string{"inbox/a.pdf", "inbox/b.pdf", "inbox/c.pdf"}, g.SourcePaths)
	assert.Equal(t, "a.pdf", g.Retained)
	assert.Equal(t, []string{"b.pdf", "c.pdf"}, g.Others)
}

func TestGroupsDeterministicOrder(t *testing.T) {
	files := []*model.ProcessedFile{
		{Name: "z1.pdf", SourcePath: "z/1.pdf", Digest: "dz"},
		{Name: "z2.pdf", SourcePath: "z/2.pdf", Digest: "dz"},
		{Name: "a1.pdf", SourcePath: "a/1.pdf", Digest: "da"},
		{Name: "a2.pdf", SourcePath: "a/2.pdf", Digest: "da"},
	}

	groups := Groups(files)
	assert.Len(t, groups, 2)
	assert.Equal(t, "da", groups[0].Digest)
	assert.Equal(t, "dz", groups[1].Digest)
}
