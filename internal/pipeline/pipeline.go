// Package pipeline drives classification over a selected document set under
// a bounded concurrency limit, with cooperative cancellation, progress
// reporting, and per-document failure containment.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/docsort/docsort/internal/assign"
	"github.com/docsort/docsort/internal/classify"
	"github.com/docsort/docsort/internal/dedup"
	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/service"
)

// Defaults for pipeline construction.
const (
	DefaultWorkers      = 4
	DefaultSampleLength = 500
)

// MediaTypePDF marks documents that go through text extraction.
const MediaTypePDF = "application/pdf"

// Document is one input to a processing run. Load fetches the full content
// from the source; it must be safe to call more than once, since export
// re-reads documents after the run.
type Document struct {
	Load       func() ([]byte, error)
	Name       string
	SourcePath string
	MediaType  string
	Size       int64
}

// Config holds the collaborators and settings for a processing run.
type Config struct {
	Extractor     service.TextExtractor
	Hasher        service.Hasher
	Classifier    *classify.Classifier
	Progress      service.ProgressFunc
	Overrides     map[string]string
	AssignOptions assign.Options
	Workers       int
	SampleLength  int
}

// Pipeline processes documents with a fixed-size worker pool.
type Pipeline struct {
	extractor    service.TextExtractor
	hasher       service.Hasher
	classifier   *classify.Classifier
	progress     service.ProgressFunc
	overrides    map[string]string
	assignOpts   assign.Options
	workers      int
	sampleLength int
}

// Result is the outcome of one processing run. Files are ordered by source
// path; when the run was cancelled, Files holds the partial set accumulated
// before cancellation.
type Result struct {
	Files     []*model.ProcessedFile
	Total     int
	Completed int
	Cancelled bool
}

// DuplicateGroups derives the duplicate-group view over this result.
func (r *Result) DuplicateGroups() []model.DuplicateGroup {
	return dedup.Groups(r.Files)
}

// ReviewCount returns how many files were routed to review.
func (r *Result) ReviewCount() int {
	count := 0
	for _, f := range r.Files {
		if f.Decision == model.DecisionReview {
			count++
		}
	}
	return count
}

// DuplicateCount returns how many files were resolved as duplicates.
func (r *Result) DuplicateCount() int {
	count := 0
	for _, f := range r.Files {
		if f.Decision == model.DecisionDuplicate {
			count++
		}
	}
	return count
}

// New creates a pipeline. The extractor, hasher, and classifier are
// required; everything else has defaults.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if cfg.Hasher == nil {
		return nil, fmt.Errorf("hasher is required")
	}
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	sampleLength := cfg.SampleLength
	if sampleLength <= 0 {
		sampleLength = DefaultSampleLength
	}
	assignOpts := cfg.AssignOptions
	if assignOpts == (assign.Options{}) {
		assignOpts = assign.DefaultOptions()
	}
	overrides := cfg.Overrides
	if overrides == nil {
		overrides = map[string]string{}
	}

	return &Pipeline{
		extractor:    cfg.Extractor,
		hasher:       cfg.Hasher,
		classifier:   cfg.Classifier,
		progress:     cfg.Progress,
		overrides:    overrides,
		assignOpts:   assignOpts,
		workers:      workers,
		sampleLength: sampleLength,
	}, nil
}

// Run processes the document set. Cancellation is cooperative: it is checked
// before each new document is started, in-flight documents finish, and the
// partial result set is returned with Cancelled set. No per-document failure
// aborts the run.
func (p *Pipeline) Run(ctx context.Context, docs []Document) *Result {
	total := len(docs)
	slog.Info("Starting processing run", "documents", total, "workers", p.workers)

	registry := dedup.NewRegistry()
	slots := make([]*model.ProcessedFile, total)
	reporter := &progressReporter{fn: p.progress}
	var completed atomic.Int64

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := range docs {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Checked again here: a job handed over just as
				// cancellation landed must not start.
				if ctx.Err() != nil {
					return
				}

				doc := docs[i]
				reporter.report(int(completed.Load()), total, doc.Name)

				slots[i] = p.processOne(ctx, doc, registry)

				done := int(completed.Add(1))
				reporter.report(done, total, doc.Name)
			}
		}()
	}
	wg.Wait()

	files := make([]*model.ProcessedFile, 0, total)
	for _, f := range slots {
		if f != nil {
			files = append(files, f)
		}
	}

	p.finalize(files, registry)

	result := &Result{
		Files:     files,
		Total:     total,
		Completed: len(files),
		Cancelled: ctx.Err() != nil,
	}

	if result.Cancelled {
		slog.Info("Processing run cancelled", "completed", result.Completed, "total", total)
	} else {
		slog.Info("Processing run finished", "completed", result.Completed,
			"duplicates", result.DuplicateCount(), "review", result.ReviewCount())
	}
	return result
}

// processOne runs the per-document state machine: hash, duplicate check,
// override short-circuit, extraction for PDFs, classification. Any panic or
// error resolves to a review entry rather than failing the run.
func (p *Pipeline) processOne(ctx context.Context, doc Document, registry *dedup.Registry) (pf *model.ProcessedFile) {
	pf = &model.ProcessedFile{
		Name:       doc.Name,
		SourcePath: doc.SourcePath,
		MediaType:  doc.MediaType,
		Size:       doc.Size,
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Document processing panicked", "document", doc.SourcePath, "panic", r)
			result := p.classifier.ErrorResult(model.ReasonPrefixProcessingError, fmt.Errorf("%v", r))
			pf.Auto = result
			pf.ApplyResult(result)
		}
	}()

	data, err := doc.Load()
	if err != nil {
		// No digest could be computed; the entry keeps its synthetic
		// identity (name and path only).
		result := p.classifier.ErrorResult(model.ReasonPrefixProcessingError, err)
		pf.Auto = result
		pf.ApplyResult(result)
		return pf
	}

	pf.Digest = p.hasher.Digest(data)
	pf.DigestPrefix = p.hasher.Prefix(pf.Digest)

	if _, isFirst := registry.Register(pf); !isFirst {
		// The first-seen entry may still be mid-classification; its
		// decision fields are copied in the finalize pass.
		pf.Decision = model.DecisionDuplicate
		pf.Reason = model.ReasonDuplicate
		return pf
	}

	if category, ok := p.overrides[pf.Digest]; ok {
		result := p.classifier.OverrideResult(category)
		pf.Auto = result
		pf.ApplyResult(result)
		pf.OverrideApplied = true
		return pf
	}

	var text string
	var result model.ClassificationResult

	if doc.MediaType == MediaTypePDF {
		extracted, err := p.extractor.Extract(ctx, data)
		if err != nil {
			result = p.classifier.ErrorResult(model.ReasonPrefixParseError, err)
		} else {
			text = extracted.Text
			metrics := extracted.Metrics
			pf.Metrics = &metrics
			result = p.classifier.Classify(classify.Input{
				Filename: doc.Name,
				Text:     text,
				IsPDF:    true,
				Metrics:  &metrics,
			})
		}
	} else {
		// Non-PDFs have no text layer; only filename rules can match.
		result = p.classifier.Classify(classify.Input{Filename: doc.Name})
	}

	pf.Auto = result
	pf.ApplyResult(result)

	if pf.Decision == model.DecisionReview {
		pf.TextSample = truncate(text, p.sampleLength)
	}
	return pf
}

// finalize copies first-seen decision fields onto duplicates and runs the
// single deterministic path-assignment pass over the complete set.
func (p *Pipeline) finalize(files []*model.ProcessedFile, registry *dedup.Registry) {
	for _, f := range files {
		if f.Decision != model.DecisionDuplicate {
			continue
		}
		first, ok := registry.FirstSeen(f.Digest)
		if !ok || first == f {
			continue
		}
		f.Category = first.Category
		f.Candidate = first.Candidate
		f.Score = first.Score
		f.Scores = cloneScores(first.Scores)
		f.OverrideApplied = first.OverrideApplied
		f.Auto = model.ClassificationResult{
			Decision:  model.DecisionDuplicate,
			Category:  first.Category,
			Candidate: first.Candidate,
			Reason:    model.ReasonDuplicate,
			Score:     first.Score,
			Scores:    cloneScores(first.Scores),
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].SourcePath < files[j].SourcePath
	})
	assign.Paths(files, p.assignOpts)
}

// progressReporter serializes progress callbacks across workers and drops
// stale counts, so the consumer always observes a monotone completed
// sequence.
type progressReporter struct {
	fn   service.ProgressFunc
	mu   sync.Mutex
	last int
}

func (r *progressReporter) report(completed, total int, current string) {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if completed < r.last {
		return
	}
	r.last = completed
	r.fn(completed, total, current)
}

func cloneScores(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
