// Package app wires configuration, logging, the crawl engine and the
// pipeline together and owns the process lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"news_archiver/internal/archive"
	"news_archiver/internal/config"
	"news_archiver/internal/logger"
	"news_archiver/internal/pipeline"
	"news_archiver/internal/source"
)

// fallbackArchiveDir is used when the configured base directory does
// not exist on disk.
const fallbackArchiveDir = "archive/news"

// Run loads the configuration, builds the pipeline and crawls until
// interrupted (or once, with run_once). A missing required setting is
// fatal before the first cycle starts; an interrupt exits cleanly.
func Run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.New(cfg.Settings.LogLevel, cfg.Settings.LogEncoding)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is unactionable

	archiveDir, err := EnsureArchiveDir(cfg.Settings.BaseArchiveDir, log)
	if err != nil {
		return err
	}

	writer := archive.NewWriter(archiveDir, archive.Mode(cfg.Settings.FilenameMode), log)
	factory := source.NewFactory(cfg.Settings, log)
	orch := pipeline.NewOrchestrator(
		func() (*config.Config, error) { return config.LoadConfig(configPath) },
		factory,
		pipeline.NewBuilder(cfg.Settings.MaxWorkers, log),
		pipeline.NewFetcher(cfg.Settings.FetchWorkers, log),
		pipeline.NewProcessor(writer, log),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal, finishing current batch",
			zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("news archiver starting",
		zap.String("archive_dir", archiveDir),
		zap.Int("sources", len(cfg.NewsSources)),
		zap.Bool("run_once", cfg.Settings.RunOnce))

	return orch.Run(ctx)
}

// EnsureArchiveDir returns the configured base directory when it
// exists, otherwise creates and returns the local fallback for this
// run.
func EnsureArchiveDir(base string, log *zap.Logger) (string, error) {
	if info, err := os.Stat(base); err == nil && info.IsDir() {
		return base, nil
	}

	local := filepath.Join(".", fallbackArchiveDir)
	if err := os.MkdirAll(local, 0o755); err != nil {
		return "", fmt.Errorf("creating fallback archive directory: %w", err)
	}
	log.Warn("base archive directory does not exist, using local fallback",
		zap.String("base", base), zap.String("fallback", local))
	return local, nil
}
