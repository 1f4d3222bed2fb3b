// Package export builds the downloadable bundle: the sorted document tree
// plus the report artifacts, written either as a single zip archive or
// mirrored onto a local folder.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/docsort/docsort/internal/classify"
	"github.com/docsort/docsort/internal/model"
)

// Entry is one (relative path, content) pair of the export set.
type Entry struct {
	Path string
	Data []byte
}

// LoadFunc returns the original content of a document by its source path.
type LoadFunc func(sourcePath string) ([]byte, error)

// Manifest is the JSON report of a full run: every result plus the
// configuration and thresholds that produced them.
type Manifest struct {
	Config     model.ScheduleConfig   `json:"config"`
	Files      []*model.ProcessedFile `json:"files"`
	Duplicates []model.DuplicateGroup `json:"duplicates"`
	Thresholds classify.Thresholds    `json:"thresholds"`
}

// SummaryCSV renders one row per processed document.
func SummaryCSV(files []*model.ProcessedFile) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"name", "source_path", "size", "media_type", "digest_prefix", "decision", "category", "candidate", "reason", "score", "output_path", "override"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, f := range files {
		row := []string{
			f.Name,
			f.SourcePath,
			strconv.FormatInt(f.Size, 10),
			f.MediaType,
			f.DigestPrefix,
			string(f.Decision),
			f.Category,
			f.Candidate,
			f.Reason,
			strconv.FormatFloat(f.Score, 'f', -1, 64),
			f.OutputPath,
			strconv.FormatBool(f.OverrideApplied),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush summary csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DuplicatesCSV renders one row per duplicate group.
func DuplicatesCSV(groups []model.DuplicateGroup) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"digest", "count", "retained", "others"}); err != nil {
		return nil, fmt.Errorf("failed to write duplicates header: %w", err)
	}

	for _, g := range groups {
		row := []string{g.Digest, strconv.Itoa(g.Count), g.Retained, strings.Join(g.Others, "; ")}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write duplicates row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush duplicates csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ManifestJSON renders the full-run manifest.
func ManifestJSON(m Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}

// ReportEntries builds the fixed report artifacts: the CSV summary, the JSON
// manifest, the duplicate-group CSV, and one source-path listing per digest
// prefix under the duplicates tree.
func ReportEntries(m Manifest) ([]Entry, error) {
	summary, err := SummaryCSV(m.Files)
	if err != nil {
		return nil, err
	}
	manifest, err := ManifestJSON(m)
	if err != nil {
		return nil, err
	}
	duplicates, err := DuplicatesCSV(m.Duplicates)
	if err != nil {
		return nil, err
	}

	entries := []Entry{
		{Path: "summary.csv", Data: summary},
		{Path: "manifest.json", Data: manifest},
		{Path: "duplicates.csv", Data: duplicates},
	}

	for _, g := range m.Duplicates {
		listing := strings.Join(g.SourcePaths, "\n") + "\n"
		entries = append(entries, Entry{
			Path: path.Join("DUPLICATES", g.DigestPrefix, "sources.txt"),
			Data: []byte(listing),
		})
	}

	return entries, nil
}

// DocumentEntries builds the sorted document tree: one entry per processed
// file at its assigned output path, content re-read through load.
func DocumentEntries(files []*model.ProcessedFile, load LoadFunc) ([]Entry, error) {
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f.OutputPath == "" {
			continue
		}
		data, err := load(f.SourcePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s for export: %w", f.SourcePath, err)
		}
		entries = append(entries, Entry{Path: f.OutputPath, Data: data})
	}
	return entries, nil
}

// BundleEntries builds the complete export set: the sorted document tree
// followed by the report artifacts.
func BundleEntries(m Manifest, load LoadFunc) ([]Entry, error) {
	docs, err := DocumentEntries(m.Files, load)
	if err != nil {
		return nil, err
	}
	reports, err := ReportEntries(m)
	if err != nil {
		return nil, err
	}
	return append(docs, reports...), nil
}
