package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// WriteArchive writes the entry set as a single zip bundle. Entries are
// written in path order so identical inputs produce identical archives.
func WriteArchive(w io.Writer, entries []Entry) error {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Path < ordered[j].Path })

	zw := zip.NewWriter(w)
	for _, entry := range ordered {
		f, err := zw.Create(entry.Path)
		if err != nil {
			return fmt.Errorf("failed to create archive entry %s: %w", entry.Path, err)
		}
		if _, err := f.Write(entry.Data); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", entry.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

// MirrorDir writes the entry set onto a local folder tree, creating
// intermediate folders as needed.
func MirrorDir(root string, entries []Entry) error {
	for _, entry := range entries {
		dest := filepath.Join(root, filepath.FromSlash(entry.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", entry.Path, err)
		}
		if err := os.WriteFile(dest, entry.Data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.Path, err)
		}
	}
	return nil
}
