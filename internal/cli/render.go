package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/docsort/docsort/internal/model"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// RenderFiles writes the per-file decision table.
func RenderFiles(w io.Writer, files []*model.ProcessedFile) {
	table := newTable(w, []string{"Source", "Decision", "Category", "Score", "Reason", "Output"})
	for _, f := range files {
		category := f.Category
		if f.Decision == model.DecisionReview {
			category = f.Candidate
		}
		table.Append([]string{
			f.SourcePath,
			string(f.Decision),
			category,
			strconv.FormatFloat(f.Score, 'f', 1, 64),
			f.Reason,
			f.OutputPath,
		})
	}
	table.Render()
}

// RenderDuplicateGroups writes the duplicate-group table.
func RenderDuplicateGroups(w io.Writer, groups []model.DuplicateGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, StyleSubtle("No duplicate groups."))
		return
	}
	table := newTable(w, []string{"Digest", "Count", "Retained", "Others"})
	for _, g := range groups {
		table.Append([]string{
			g.DigestPrefix,
			strconv.Itoa(g.Count),
			g.Retained,
			strings.Join(g.Others, ", "),
		})
	}
	table.Render()
}

// RenderClusters writes the review-cluster table.
func RenderClusters(w io.Writer, clusters []model.Cluster) {
	if len(clusters) == 0 {
		fmt.Fprintln(w, StyleSubtle("No review clusters."))
		return
	}
	table := newTable(w, []string{"#", "Files", "Shared Tokens"})
	for i, c := range clusters {
		paths := make([]string, len(c.Files))
		for j, f := range c.Files {
			paths[j] = f.SourcePath
		}
		tokens := c.Tokens
		if len(tokens) > 8 {
			tokens = tokens[:8]
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			strings.Join(paths, ", "),
			strings.Join(tokens, " "),
		})
	}
	table.Render()
}

// RenderRuns writes the processing-run audit table.
func RenderRuns(w io.Writer, runs []model.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, StyleSubtle("No recorded runs."))
		return
	}
	table := newTable(w, []string{"ID", "Started", "Total", "Completed", "Duplicates", "Review", "Cancelled"})
	for _, r := range runs {
		table.Append([]string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Completed),
			strconv.Itoa(r.Duplicates),
			strconv.Itoa(r.Review),
			strconv.FormatBool(r.Cancelled),
		})
	}
	table.Render()
}

// RenderOverrides writes the standing-override table.
func RenderOverrides(w io.Writer, overrides []model.ReviewOverride) {
	if len(overrides) == 0 {
		fmt.Fprintln(w, StyleSubtle("No review overrides."))
		return
	}
	table := newTable(w, []string{"Digest", "Category", "Updated"})
	for _, o := range overrides {
		digest := o.Digest
		if len(digest) > 16 {
			digest = digest[:16] + "…"
		}
		table.Append([]string{
			digest,
			o.Category,
			o.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}
