// Package extract implements the text-extraction collaborator: bounded
// sampling of a PDF's embedded text layer with layout-derived metrics.
// No OCR is performed; documents without a usable text layer are left for
// the classifier's scanned-document check.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/service"
)

// Default extraction bounds.
const (
	DefaultMaxPages = 8
	DefaultMaxChars = 20000
	DefaultTimeout  = 30 * time.Second
)

// Extractor samples text from PDF bytes. Page and character caps bound the
// work per document; the timeout bounds wall-clock time so one pathological
// document cannot stall a run.
type Extractor struct {
	validationConf *pdfcpumodel.Configuration
	sampleFn       func(data []byte) (*service.ExtractedText, error)
	maxPages       int
	maxChars       int
	timeout        time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxPages overrides the page-sampling cap.
func WithMaxPages(n int) Option {
	return func(e *Extractor) { e.maxPages = n }
}

// WithMaxChars overrides the total character cap.
func WithMaxChars(n int) Option {
	return func(e *Extractor) { e.maxChars = n }
}

// WithTimeout overrides the per-document extraction timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.timeout = d }
}

// New creates an extractor with the default bounds.
func New(opts ...Option) *Extractor {
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed

	e := &Extractor{
		validationConf: conf,
		maxPages:       DefaultMaxPages,
		maxChars:       DefaultMaxChars,
		timeout:        DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sampleFn = e.sample
	return e
}

// Extract validates the PDF structure and samples its text layer. Corrupt
// input fails distinctly rather than returning empty text, so the pipeline
// can record a parse error. The context and the extractor's own timeout both
// cancel the wait; a sample already in flight is allowed to finish in the
// background.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*service.ExtractedText, error) {
	type outcome struct {
		result *service.ExtractedText
		err    error
	}

	done := make(chan outcome, 1)
	go func() {
		result, err := e.sampleFn(data)
		done <- outcome{result: result, err: err}
	}()

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, fmt.Errorf("text extraction timed out after %s", e.timeout)
	}
}

// sample does the synchronous work: structural validation, then per-page
// text collection up to the configured caps.
func (e *Extractor) sample(data []byte) (result *service.ExtractedText, err error) {
	// The underlying parser can panic on malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	if err := api.Validate(bytes.NewReader(data), e.validationConf); err != nil {
		return nil, fmt.Errorf("pdf validation failed: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	pages := reader.NumPage()
	if pages > e.maxPages {
		pages = e.maxPages
	}

	var text strings.Builder
	chars := 0
	items := 0
	sampled := 0

	for pageNum := 1; pageNum <= pages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		sampled++

		items += len(page.Content().Text)

		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the sample.
			continue
		}

		if chars+len(content) > e.maxChars {
			content = content[:e.maxChars-chars]
		}
		if text.Len() > 0 && content != "" {
			text.WriteByte('\n')
		}
		text.WriteString(content)
		chars += len(content)

		if chars >= e.maxChars {
			break
		}
	}

	return &service.ExtractedText{
		Text: text.String(),
		Metrics: model.ScanMetrics{
			SampledPages: sampled,
			Chars:        chars,
			TextItems:    items,
		},
	}, nil
}
