// Package ingest discovers classifiable documents on disk and turns them
// into pipeline inputs.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docsort/docsort/internal/common"
	"github.com/docsort/docsort/internal/pipeline"
)

// mediaTypes maps the accepted file extensions to their media type. Anything
// else is skipped during discovery.
var mediaTypes = map[string]string{
	".pdf":  pipeline.MediaTypePDF,
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".heic": "image/heic",
}

// Discover walks root recursively and returns one pipeline document per
// PDF or image file, ordered by source path. Source paths are relative to
// root with forward slashes. Hidden directories are skipped; unreadable
// entries are logged and skipped rather than failing the walk.
func Discover(ctx context.Context, root string) ([]pipeline.Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("inspecting input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	var docs []pipeline.Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.Warn("Skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(d.Name()))]
		if !ok {
			return nil
		}

		fileInfo, statErr := d.Info()
		if statErr != nil {
			slog.Warn("Skipping unstattable file", "path", path, "error", statErr)
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		absPath := path
		docs = append(docs, pipeline.Document{
			Name:       d.Name(),
			SourcePath: filepath.ToSlash(rel),
			MediaType:  mediaType,
			Size:       fileInfo.Size(),
			Load: func() ([]byte, error) {
				return os.ReadFile(absPath)
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, common.ErrNoDocuments
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].SourcePath < docs[j].SourcePath
	})
	slog.Info("Discovered documents", "root", root, "count", len(docs))
	return docs, nil
}
