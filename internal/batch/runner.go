// Package batch extracts text from every matching file in a directory, one file at a time,
// writing a sibling text file per success. A failing file never stops the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/models"
	"go.uber.org/zap"
)

const (
	defaultExtension    = ".pdf"
	defaultOutputSuffix = "_extracted.txt"
)

// Reporter receives progress for a batch run. Result is called once per attempted file,
// right after that file reaches a terminal status.
type Reporter interface {
	Start(dir string, total int)
	Result(res *models.FileResult)
	Finish(report *models.BatchReport)
}

// Runner runs batch extractions sequentially.
type Runner struct {
	extractor    *extract.Extractor
	extension    string
	outputSuffix string
	reporter     Reporter
	logger       *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a logger for per-file debug and failure events.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithReporter sets the reporter that receives status for each file.
func WithReporter(rep Reporter) RunnerOption {
	return func(r *Runner) { r.reporter = rep }
}

// WithExtension sets the file name suffix that selects input files. Default ".pdf".
func WithExtension(ext string) RunnerOption {
	return func(r *Runner) { r.extension = ext }
}

// WithOutputSuffix sets the suffix that replaces the extension in output names. Default "_extracted.txt".
func WithOutputSuffix(suffix string) RunnerOption {
	return func(r *Runner) { r.outputSuffix = suffix }
}

// NewRunner creates a runner. When extractor is nil, one that separates non-empty pages
// with blank lines is used.
func NewRunner(extractor *extract.Extractor, opts ...RunnerOption) *Runner {
	if extractor == nil {
		extractor = extract.NewExtractor(extract.WithPageLayout(extract.PageLayoutBlankLine))
	}
	r := &Runner{
		extractor:    extractor,
		extension:    defaultExtension,
		outputSuffix: defaultOutputSuffix,
		reporter:     nopReporter{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run lists dir once and processes every matching file in listing order.
// Per-file failures are recorded in the report; the returned error is non-nil only when
// the directory cannot be listed, the extension maps to no format, or ctx is cancelled
// (remaining files then stay pending).
func (r *Runner) Run(ctx context.Context, dir string) (*models.BatchReport, error) {
	format, err := extract.FormatForPath(r.extension)
	if err != nil {
		return nil, err
	}
	files, err := Discover(dir, r.extension)
	if err != nil {
		return nil, err
	}

	report := &models.BatchReport{
		RunID:     uuid.New().String(),
		Directory: dir,
		StartedAt: time.Now(),
		Results:   make([]*models.FileResult, len(files)),
	}
	for i, name := range files {
		report.Results[i] = &models.FileResult{
			File:   name,
			Path:   filepath.Join(dir, name),
			Status: models.StatusPending,
		}
	}
	r.logger.Debug("batch starting",
		zap.String("run_id", report.RunID),
		zap.String("dir", dir),
		zap.Int("files", len(files)),
	)

	r.reporter.Start(dir, len(files))
	for _, res := range report.Results {
		if ctx.Err() != nil {
			break
		}
		r.process(res, format)
		r.reporter.Result(res)
	}
	report.FinishedAt = time.Now()
	r.reporter.Finish(report)

	r.logger.Debug("batch finished",
		zap.String("run_id", report.RunID),
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", report.Failed()),
	)
	return report, ctx.Err()
}

// ProcessFile extracts a single file with the same isolation as Run and reports it.
func (r *Runner) ProcessFile(path string) (*models.FileResult, error) {
	format, err := extract.FormatForPath(r.extension)
	if err != nil {
		return nil, err
	}
	res := &models.FileResult{
		File:   filepath.Base(path),
		Path:   path,
		Status: models.StatusPending,
	}
	r.process(res, format)
	r.reporter.Result(res)
	return res, nil
}

// Extension returns the input file suffix this runner selects.
func (r *Runner) Extension() string {
	return r.extension
}

func (r *Runner) process(res *models.FileResult, format extract.Format) {
	res.Status = models.StatusProcessing
	r.logger.Debug("batch processing file", zap.String("path", res.Path))

	out, chars, err := r.extractTo(res.Path, format)
	if err != nil {
		res.Status = models.StatusFailed
		res.Error = failureMessage(err)
		r.logger.Warn("batch file failed", zap.String("path", res.Path), zap.Error(err))
		return
	}
	res.Status = models.StatusSucceeded
	res.OutputPath = out
	res.Characters = chars
	r.logger.Debug("batch file extracted",
		zap.String("path", res.Path),
		zap.String("output", out),
		zap.Int("characters", chars),
	)
}

// extractTo writes the output only after the whole document has been extracted,
// so a failed file never leaves a partial output behind.
func (r *Runner) extractTo(path string, format extract.Format) (out string, chars int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic during extraction: %v", rec)
		}
	}()

	text, err := r.extractor.ExtractFile(path, format)
	if err != nil {
		return "", 0, err
	}
	out = OutputPath(path, r.extension, r.outputSuffix)
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		return "", 0, fmt.Errorf("write output: %w", err)
	}
	return out, utf8.RuneCountInString(text), nil
}

// failureMessage drops the path prefix of document errors; the report already names the file.
func failureMessage(err error) string {
	var docErr *extract.DocumentError
	if errors.As(err, &docErr) && docErr.Err != nil {
		return docErr.Err.Error()
	}
	return err.Error()
}

// Discover returns the names of the non-directory entries of dir whose name ends with ext,
// in directory listing order.
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// OutputPath replaces the trailing ext of input with suffix: "a/report.pdf" becomes
// "a/report_extracted.txt". Directory components are left alone.
func OutputPath(input, ext, suffix string) string {
	return strings.TrimSuffix(input, ext) + suffix
}

type nopReporter struct{}

func (nopReporter) Start(string, int)          {}
func (nopReporter) Result(*models.FileResult)  {}
func (nopReporter) Finish(*models.BatchReport) {}
