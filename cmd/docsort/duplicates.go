package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsort/docsort/internal/cli"
	"github.com/docsort/docsort/internal/dedup"
	"github.com/docsort/docsort/internal/hash"
	"github.com/docsort/docsort/internal/ingest"
	"github.com/docsort/docsort/internal/model"
)

func duplicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates <input-dir>",
		Short: "Report duplicate documents by content digest without classifying",
		Long: `Duplicates hashes every PDF and image under the input directory and
prints the groups of files sharing identical content. No classification,
database, or export is involved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			docs, err := ingest.Discover(ctx, args[0])
			if err != nil {
				return err
			}

			hasher := hash.NewService()
			files := make([]*model.ProcessedFile, 0, len(docs))
			for _, doc := range docs {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				data, loadErr := doc.Load()
				if loadErr != nil {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("Skipping %s: %v", doc.SourcePath, loadErr)))
					continue
				}
				digest := hasher.Digest(data)
				files = append(files, &model.ProcessedFile{
					Name:         doc.Name,
					SourcePath:   doc.SourcePath,
					Digest:       digest,
					DigestPrefix: hasher.Prefix(digest),
				})
			}

			groups := dedup.Groups(files)
			if len(groups) == 0 {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("No duplicates among %d documents", len(files))))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%d duplicate group(s)", len(groups))))
			cli.RenderDuplicateGroups(os.Stdout, groups)
			return nil
		},
	}
}
