// Package container provides dependency injection for the expense-report
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"expensereport/internal/batchproc"
	"expensereport/internal/classifier"
	"expensereport/internal/config"
	"expensereport/internal/extractor"
	"expensereport/internal/layout"
	"expensereport/internal/logging"
	"expensereport/internal/pdftext"
	"expensereport/internal/render"
	"expensereport/internal/split"
	"expensereport/internal/store"
	"expensereport/internal/validate"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getter methods only.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	classifier *classifier.Classifier
	validator  *validate.Validator
	allocator  *split.Allocator
	layout     *layout.Engine
	renderer   *render.Renderer
	records    *store.RecordStore

	fieldExtractor extractor.Extractor
	textExtractor  pdftext.TextExtractor
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Logger first; everything else wants it.
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	rules := classifier.DefaultRules()
	if cfg.Data.RulesFile != "" {
		loaded, err := store.LoadRules(cfg.Data.RulesFile)
		if err != nil {
			return nil, err
		}
		if len(loaded) > 0 {
			logger.WithField(logging.FieldCount, len(loaded)).Info("Loaded classifier rule overrides")
			rules = loaded
		}
	}
	cls := classifier.NewWithRules(rules, logger)

	var fieldExtractor extractor.Extractor
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := extractor.NewGeminiExtractor(
			ctx,
			cfg.AI.APIKey,
			cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
			logger,
		)
		if err != nil {
			return nil, err
		}
		fieldExtractor = gemini
		logger.Info("AI extraction enabled")
	} else {
		logger.Info("AI extraction disabled")
	}

	renderer := render.New(logger)
	renderer.SetDelimiter([]rune(cfg.Report.Delimiter)[0])

	return &Container{
		logger:         logger,
		config:         cfg,
		classifier:     cls,
		validator:      validate.New(cls, logger),
		allocator:      split.New(logger),
		layout:         layout.New(logger),
		renderer:       renderer,
		records:        store.NewRecordStore(cfg.Data.RecordsFile, cfg.Data.SplitsFile, logger),
		fieldExtractor: fieldExtractor,
		textExtractor:  pdftext.NewPopplerExtractor(logger, cfg.PDF.OCREnabled),
	}, nil
}

// Logger returns the application logger.
func (c *Container) Logger() logging.Logger { return c.logger }

// Config returns the application configuration.
func (c *Container) Config() *config.Config { return c.config }

// Classifier returns the keyword classifier.
func (c *Container) Classifier() *classifier.Classifier { return c.classifier }

// Validator returns the expense record validator.
func (c *Container) Validator() *validate.Validator { return c.validator }

// Allocator returns the split allocator.
func (c *Container) Allocator() *split.Allocator { return c.allocator }

// Layout returns the report layout engine.
func (c *Container) Layout() *layout.Engine { return c.layout }

// Renderer returns the report renderer.
func (c *Container) Renderer() *render.Renderer { return c.renderer }

// Records returns the session record store.
func (c *Container) Records() *store.RecordStore { return c.records }

// NewProcessor builds the batch receipt processor. It fails when AI
// extraction is disabled, since the pipeline cannot run without it.
func (c *Container) NewProcessor() (*batchproc.Processor, error) {
	if c.fieldExtractor == nil {
		return nil, fmt.Errorf("AI extraction is disabled; set GEMINI_API_KEY and ai.enabled")
	}
	return batchproc.New(
		c.textExtractor,
		c.fieldExtractor,
		c.validator,
		c.config.Batch.Workers,
		c.logger,
	), nil
}

// Close releases any dependencies that hold external resources.
func (c *Container) Close() error {
	if closer, ok := c.fieldExtractor.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
