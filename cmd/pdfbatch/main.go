// Package main is the pdfbatch entry point. It extracts every PDF in the configured input
// directory to a sibling text file and prints one status line per file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hyperjump/doctext/internal/batch"
	"github.com/hyperjump/doctext/internal/cli"
	"github.com/hyperjump/doctext/internal/config"
	"github.com/hyperjump/doctext/internal/watcher"
	"github.com/hyperjump/doctext/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, config.ResolvePath(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one batch over the configured directory, then keeps watching it when
// batch.watch is set, until ctx is done. It returns the process exit code.
func run(ctx context.Context, configPath string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	format, err := cli.ParseOutputFormat(cfg.Batch.Output)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Debug("config loaded",
		zap.String("config_path", configPath),
		zap.String("input_dir", cfg.Batch.InputDir),
		zap.Bool("watch", cfg.Batch.Watch),
	)

	return execute(ctx, cfg, logger, cli.NewReportWriter(stdout, format), stderr)
}

// execute runs the batch, and the watcher when enabled, reporting to reporter.
func execute(ctx context.Context, cfg *config.Config, logger *zap.Logger, reporter batch.Reporter, stderr io.Writer) int {
	runner := batch.NewRunner(nil,
		batch.WithLogger(logger),
		batch.WithReporter(reporter),
		batch.WithExtension(cfg.Batch.Extension),
		batch.WithOutputSuffix(cfg.Batch.OutputSuffix),
	)

	// The watcher starts before the initial listing so a file that lands while the batch
	// runs is still seen. Its callbacks wait on mu until the batch is done.
	var mu sync.Mutex
	var w *watcher.Watcher
	if cfg.Batch.Watch {
		w = newWatcher(cfg, runner, &mu, logger)
		if err := w.Start(ctx); err != nil {
			fmt.Fprintf(stderr, "Failed to start watcher: %v\n", err)
			return 1
		}
		defer w.Stop()
	}

	mu.Lock()
	_, err := runner.Run(ctx, cfg.Batch.InputDir)
	mu.Unlock()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintf(stderr, "Batch failed: %v\n", err)
		return 1
	}
	if w == nil {
		return 0
	}
	logger.Info("watching for new documents", zap.String("dir", w.Dir()))
	<-ctx.Done()
	return 0
}

// newWatcher returns a watcher that runs settled files through runner one at a time.
func newWatcher(cfg *config.Config, runner *batch.Runner, mu *sync.Mutex, logger *zap.Logger) *watcher.Watcher {
	onChange := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if _, err := runner.ProcessFile(path); err != nil {
			logger.Warn("watch process file failed", zap.String("path", path), zap.Error(err))
		}
	}
	return watcher.NewWatcher(cfg.Batch.InputDir, runner.Extension(), onChange,
		watcher.WithLogger(logger),
		watcher.WithIgnoreSuffix(cfg.Batch.OutputSuffix),
	)
}
