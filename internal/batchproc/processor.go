// Package batchproc runs the receipt pipeline (pdf text, LLM extraction,
// validation) over many files with a bounded worker pool. Each file's
// outcome is collected independently: one bad receipt never aborts its
// siblings.
package batchproc

import (
	"context"
	"fmt"
	"sync"

	"expensereport/internal/extractor"
	"expensereport/internal/logging"
	"expensereport/internal/models"
	"expensereport/internal/pdftext"
	"expensereport/internal/validate"
)

// DefaultWorkers bounds the number of concurrent extractions.
const DefaultWorkers = 5

// Result is the discriminated outcome for one receipt file: either Record
// or Err is set.
type Result struct {
	File   string
	Record *models.ExpenseRecord
	Err    error
}

// Summary aggregates the per-file results of a batch run, in input order.
type Summary struct {
	Results []Result
}

// Records returns the successfully processed records, in input order.
func (s Summary) Records() []*models.ExpenseRecord {
	var records []*models.ExpenseRecord
	for _, r := range s.Results {
		if r.Err == nil && r.Record != nil {
			records = append(records, r.Record)
		}
	}
	return records
}

// Failed returns the results that carry an error.
func (s Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// String reports the batch outcome as "N of M receipts processed".
func (s Summary) String() string {
	return fmt.Sprintf("%d of %d receipts processed", len(s.Records()), len(s.Results))
}

// Processor wires the three pipeline stages together.
type Processor struct {
	textExtractor  pdftext.TextExtractor
	fieldExtractor extractor.Extractor
	validator      *validate.Validator
	logger         logging.Logger
	workers        int
}

// New creates a Processor. workers <= 0 selects DefaultWorkers.
func New(textExtractor pdftext.TextExtractor, fieldExtractor extractor.Extractor, validator *validate.Validator, workers int, logger logging.Logger) *Processor {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Processor{
		textExtractor:  textExtractor,
		fieldExtractor: fieldExtractor,
		validator:      validator,
		logger:         logger,
		workers:        workers,
	}
}

// ProcessFiles runs the pipeline over all files concurrently and returns a
// Summary whose results match the input order.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) Summary {
	results := make([]Result, len(files))

	jobs := make(chan int, p.workers)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.processOne(ctx, files[i])
			}
		}()
	}

	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			results[i] = Result{File: files[i], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	summary := Summary{Results: results}
	p.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: "workers", Value: p.workers},
		logging.Field{Key: "failed", Value: len(summary.Failed())},
	).Info("Batch processing completed")

	return summary
}

// processOne runs a single receipt through the pipeline.
func (p *Processor) processOne(ctx context.Context, file string) Result {
	text, err := p.textExtractor.ExtractText(file)
	if err != nil {
		p.logger.WithError(err).WithField(logging.FieldFile, file).Warn("Text extraction failed")
		return Result{File: file, Err: fmt.Errorf("text extraction: %w", err)}
	}

	raw, err := p.fieldExtractor.Extract(ctx, text)
	if err != nil {
		p.logger.WithError(err).WithField(logging.FieldFile, file).Warn("Field extraction failed")
		return Result{File: file, Err: fmt.Errorf("field extraction: %w", err)}
	}

	record, err := p.validator.Validate(raw)
	if err != nil {
		p.logger.WithError(err).WithField(logging.FieldFile, file).Warn("Validation failed")
		return Result{File: file, Err: fmt.Errorf("validation: %w", err)}
	}

	return Result{File: file, Record: record}
}
