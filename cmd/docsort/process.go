package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsort/docsort/internal/cli"
	"github.com/docsort/docsort/internal/cluster"
	"github.com/docsort/docsort/internal/export"
	"github.com/docsort/docsort/internal/extract"
	"github.com/docsort/docsort/internal/hash"
	"github.com/docsort/docsort/internal/ingest"
	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/pipeline"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <input-dir>",
		Short: "Classify a folder of documents and export the sorted tree",
		Long: `Process walks the input directory, classifies every PDF and image it
finds, collapses content duplicates, and writes the sorted tree plus
reports either as a zip archive (--out) or onto a local folder
(--mirror). Interrupting with Ctrl-C finishes in-flight documents and
exports the partial results.`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().String("out", "", "write the export bundle as a zip archive at this path")
	cmd.Flags().String("mirror", "", "mirror the export bundle onto this directory")
	cmd.Flags().Int("workers", 0, "concurrent document workers (default 4)")
	cmd.Flags().Bool("show-files", false, "print the per-file decision table")
	cmd.Flags().Bool("clusters", false, "print review clusters of likely-related documents")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inputDir := args[0]

	outPath, _ := cmd.Flags().GetString("out")
	mirrorDir, _ := cmd.Flags().GetString("mirror")
	workers, _ := cmd.Flags().GetInt("workers")
	showFiles, _ := cmd.Flags().GetBool("show-files")
	showClusters, _ := cmd.Flags().GetBool("clusters")

	if outPath == "" && mirrorDir == "" {
		outPath = "docsort-export.zip"
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close storage", "error", closeErr)
		}
	}()

	classifier, err := loadClassifier(ctx, store)
	if err != nil {
		return err
	}
	overrides, err := loadOverrideMap(ctx, store)
	if err != nil {
		return err
	}
	scheduleCfg, err := store.GetScheduleConfig(ctx)
	if err != nil {
		return err
	}

	docs, err := ingest.Discover(ctx, inputDir)
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(os.Stdout)
	runCtx := interrupts.HandleInterrupts(ctx)

	bar := progressbar.NewOptions(len(docs),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Classifying documents...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	var extractOpts []extract.Option
	if n := viper.GetInt("extract.max_pages"); n > 0 {
		extractOpts = append(extractOpts, extract.WithMaxPages(n))
	}
	if n := viper.GetInt("extract.max_chars"); n > 0 {
		extractOpts = append(extractOpts, extract.WithMaxChars(n))
	}

	p, err := pipeline.New(pipeline.Config{
		Extractor:  extract.New(extractOpts...),
		Hasher:     hash.NewService(),
		Classifier: classifier,
		Overrides:  overrides,
		Workers:    workers,
		Progress: func(completed, _ int, _ string) {
			_ = bar.Set(completed)
		},
	})
	if err != nil {
		return err
	}

	started := time.Now()
	result := p.Run(runCtx, docs)
	_ = bar.Finish()
	fmt.Println()

	if err := store.RecordRun(ctx, &model.RunRecord{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Total:      result.Total,
		Completed:  result.Completed,
		Duplicates: result.DuplicateCount(),
		Review:     result.ReviewCount(),
		Cancelled:  result.Cancelled,
	}); err != nil {
		slog.Warn("Failed to record run", "error", err)
	}

	printSummary(result)

	groups := result.DuplicateGroups()
	if len(groups) > 0 {
		fmt.Println(cli.FormatTitle("Duplicate groups"))
		cli.RenderDuplicateGroups(os.Stdout, groups)
	}

	if showFiles {
		fmt.Println(cli.FormatTitle("Decisions"))
		cli.RenderFiles(os.Stdout, result.Files)
	}

	if showClusters {
		fmt.Println(cli.FormatTitle("Review clusters"))
		cli.RenderClusters(os.Stdout, cluster.Clusters(result.Files))
	}

	manifest := export.Manifest{
		Config:     scheduleCfg,
		Files:      result.Files,
		Duplicates: groups,
		Thresholds: classifier.Thresholds(),
	}

	loaders := make(map[string]func() ([]byte, error), len(docs))
	for _, doc := range docs {
		loaders[doc.SourcePath] = doc.Load
	}
	entries, err := export.BundleEntries(manifest, func(sourcePath string) ([]byte, error) {
		load, ok := loaders[sourcePath]
		if !ok {
			return nil, fmt.Errorf("no source for %s", sourcePath)
		}
		return load()
	})
	if err != nil {
		return fmt.Errorf("failed to build export bundle: %w", err)
	}

	if outPath != "" {
		if err := writeArchive(outPath, entries); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Export written to %s", outPath)))
	}
	if mirrorDir != "" {
		if err := export.MirrorDir(mirrorDir, entries); err != nil {
			return fmt.Errorf("failed to mirror export: %w", err)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Export mirrored to %s", mirrorDir)))
	}

	return nil
}

func printSummary(result *pipeline.Result) {
	assigned := result.Completed - result.ReviewCount() - result.DuplicateCount()
	summary := fmt.Sprintf("Processed %d/%d documents: %d assigned, %d for review, %d duplicates",
		result.Completed, result.Total, assigned, result.ReviewCount(), result.DuplicateCount())

	if result.Cancelled {
		fmt.Println(cli.FormatWarning(summary + " (interrupted, partial results)"))
		return
	}
	fmt.Println(cli.FormatSuccess(summary))
}

func writeArchive(path string, entries []export.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := export.WriteArchive(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	return nil
}
