package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Env holds the side-effecting collaborators of a run.
type Env struct {
	Out       io.Writer
	Clipboard Clipboard
	Logger    *zap.Logger
	Resolver  *TargetResolver
	// NewCollector builds the collector for a resolved working directory.
	NewCollector func(dir string) *Collector
	// NewTokenizer is only called when Options.Tokenizer is set.
	NewTokenizer func(kind, model string, logger *zap.Logger) (Tokenizer, error)
}

const (
	msgNothingToDo = "✅ No files found in yek output. Nothing to do."
	msgCopied      = "✅ Copied to clipboard"
)

// Run collects, reports and publishes once. Steps run strictly in sequence
// and the clipboard is written last, only after everything else succeeded.
func Run(ctx context.Context, opts Options, env Env) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Load optional collaborators up front so a bad flag fails before the
	// collector runs.
	var filter *RecordFilter
	if opts.IgnoreFile != "" {
		f, err := LoadRecordFilter(opts.IgnoreFile)
		if err != nil {
			return err
		}
		filter = f
	}
	var tokenizer Tokenizer
	if opts.Tokenizer != "" {
		tk, err := env.NewTokenizer(opts.Tokenizer, opts.Model, logger)
		if err != nil {
			return fmt.Errorf("error initializing tokenizer: %w", err)
		}
		tokenizer = tk
	}
	var langs *Languages
	if opts.Report.TopLangCount > 0 {
		l, err := LoadLanguages(opts.LanguagesFile)
		if err != nil {
			return err
		}
		langs = l
	}

	target, err := env.Resolver.Resolve(ctx, opts.Source(), opts.Path)
	if errors.Is(err, errSelectionAborted) {
		fmt.Fprintln(env.Out, "Interactive selection aborted.")
		return nil
	}
	if err != nil {
		return err
	}
	defer target.Close()

	start := time.Now()
	output, err := env.NewCollector(target.Dir).Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("collected", zap.Duration("elapsed", time.Since(start)))

	records, err := DecodeRecords(output)
	if err != nil {
		return err
	}
	if filter != nil {
		before := len(records)
		records = filter.Apply(records)
		logger.Debug("applied ignore file",
			zap.String("file", opts.IgnoreFile), zap.Int("dropped", before-len(records)))
	}

	if len(records) == 0 {
		fmt.Fprintln(env.Out, msgNothingToDo)
		return nil
	}

	stats := Aggregate(records)
	reporter := NewReporter(env.Out, opts.Report)
	reporter.PrintSummary(stats.Run)
	if tokenizer != nil {
		n, err := tokenizer.CountTokens(concatContent(records))
		if err != nil {
			logger.Warn("exact token count failed", zap.Error(err))
		} else {
			reporter.PrintExactTokens(tokenizer.Name(), n)
		}
	}
	reporter.PrintDirs(stats.Dirs)
	reporter.PrintFiles(stats.Files)
	if langs != nil {
		reporter.PrintLanguages(AggregateLanguages(records, langs))
	}

	if opts.PDF != "" {
		if err := WritePDF(NewPDFReport(stats, records, opts.Report), opts.PDF); err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "\nSaved PDF to %s\n", opts.PDF)
	}

	if err := env.Clipboard.WriteAll(BuildBlob(records)); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "\n"+msgCopied)
	return nil
}

func concatContent(records []FileRecord) string {
	n := 0
	for _, rec := range records {
		n += len(rec.Content)
	}
	buf := make([]byte, 0, n)
	for _, rec := range records {
		buf = append(buf, rec.Content...)
	}
	return string(buf)
}
