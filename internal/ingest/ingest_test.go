package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsort/docsort/internal/common"
	"github.com/docsort/docsort/internal/pipeline"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDiscoverFindsPDFsAndImages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "deed.pdf", "pdf bytes")
	writeFile(t, root, "sub/scan.JPG", "jpeg bytes")
	writeFile(t, root, "sub/deep/photo.png", "png bytes")
	writeFile(t, root, "notes.txt", "ignored")
	writeFile(t, root, "report.docx", "ignored")

	docs, err := Discover(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "deed.pdf", docs[0].Name)
	assert.Equal(t, "deed.pdf", docs[0].SourcePath)
	assert.Equal(t, pipeline.MediaTypePDF, docs[0].MediaType)
	assert.Equal(t, int64(len("pdf bytes")), docs[0].Size)

	assert.Equal(t, "sub/deep/photo.png", docs[1].SourcePath)
	assert.Equal(t, "image/png", docs[1].MediaType)

	assert.Equal(t, "sub/scan.JPG", docs[2].SourcePath)
	assert.Equal(t, "image/jpeg", docs[2].MediaType)
}

func TestDiscoverLoadsContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc.pdf", "hello pdf")

	docs, err := Discover(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	data, err := docs[0].Load()
	require.NoError(t, err)
	assert.Equal(t, "hello pdf", string(data))
}

func TestDiscoverSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".cache/stale.pdf", "hidden")
	writeFile(t, root, "visible.pdf", "visible")

	docs, err := Discover(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "visible.pdf", docs[0].SourcePath)
}

func TestDiscoverEmptyTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "no documents here")

	_, err := Discover(context.Background(), root)
	assert.ErrorIs(t, err, common.ErrNoDocuments)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDiscoverRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc.pdf", "content")

	_, err := Discover(context.Background(), filepath.Join(root, "doc.pdf"))
	assert.Error(t, err)
}

func TestDiscoverCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc.pdf", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, root)
	assert.True(t, errors.Is(err, context.Canceled))
}
