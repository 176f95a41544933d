// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives one extraction run: load the transcript, extract
// clues, report them, and write the output table.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/clue-extractor/internal/document"
	"github.com/pdiddy/clue-extractor/internal/export"
	"github.com/pdiddy/clue-extractor/internal/extract"
	"github.com/pdiddy/clue-extractor/pkg/types"
)

const (
	DefaultInputPath  = "text.html"
	DefaultOutputPath = "out.csv"
)

// Summary describes a finished (or aborted) run.
type Summary struct {
	Containers int
	Clues      int
	Skipped    extract.SkipCounts

	// Written is false when no output file was produced.
	Written bool
}

// Run executes the pipeline for cfg, printing one line per clue to w and
// logging the skip summary at info level. With zero clues it returns an
// error wrapping export.ErrNoClues and leaves the output path untouched.
func Run(ctx context.Context, cfg types.ExtractionConfig, w io.Writer, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = withDefaults(cfg)

	clues, summary, err := Extract(ctx, cfg, logger)
	if err != nil {
		return summary, err
	}

	for _, c := range clues {
		fmt.Fprintf(w, "[%s, %s] %s: %s\n", c.Time, c.Date, c.Author, c.Text)
	}
	logger.Info("extraction summary",
		zap.String("input", cfg.InputPath),
		zap.Int("containers", summary.Containers),
		zap.Int("clues", summary.Clues),
		zap.Int("skipped", summary.Skipped.Total()),
		zap.Int("no_text", summary.Skipped.NoText),
		zap.Int("not_clue", summary.Skipped.NotClue),
		zap.Int("no_author", summary.Skipped.NoAuthor),
		zap.Int("bad_annotation", summary.Skipped.BadAnnotation))

	if len(clues) == 0 {
		return summary, fmt.Errorf("%s: %w", cfg.InputPath, export.ErrNoClues)
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if err := export.Write(clues, cfg.OutputPath, cfg.Format); err != nil {
		return summary, err
	}
	summary.Written = true
	logger.Info("wrote clues",
		zap.String("path", cfg.OutputPath),
		zap.String("format", string(cfg.Format)),
		zap.Int("count", len(clues)))
	return summary, nil
}

// Extract loads cfg.InputPath and returns its clues without writing
// anything.
func Extract(ctx context.Context, cfg types.ExtractionConfig, logger *zap.Logger) ([]types.Clue, Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = withDefaults(cfg)

	ex, err := extract.New(cfg.Selectors, extract.WithLogger(logger))
	if err != nil {
		return nil, Summary{}, err
	}

	doc, err := document.Load(cfg.InputPath)
	if err != nil {
		return nil, Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Summary{}, err
	}

	res := ex.Extract(doc)
	return res.Clues, Summary{
		Containers: res.Containers,
		Clues:      len(res.Clues),
		Skipped:    res.Skipped,
	}, nil
}

// Messages loads cfg.InputPath and returns every message in document order.
func Messages(cfg types.ExtractionConfig, logger *zap.Logger) ([]types.Message, error) {
	cfg = withDefaults(cfg)

	ex, err := extract.New(cfg.Selectors, extract.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	return ex.Messages(doc), nil
}

func withDefaults(cfg types.ExtractionConfig) types.ExtractionConfig {
	if cfg.InputPath == "" {
		cfg.InputPath = DefaultInputPath
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.Format == "" {
		cfg.Format = types.FormatCSV
	}
	return cfg
}
