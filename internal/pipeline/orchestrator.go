package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"news_archiver/internal/config"
)

// CycleState is threaded through every cycle instead of a free-floating
// first-run flag. FirstCycle is true exactly once per process lifetime.
type CycleState struct {
	FirstCycle bool
	Cycle      int
}

// Orchestrator partitions the configured sources into fixed-size
// batches and drives build → fetch → extract for each batch, strictly
// in order, cycle after cycle.
type Orchestrator struct {
	reload    func() (*config.Config, error)
	factory   SourceFactory
	builder   *Builder
	fetcher   *Fetcher
	processor *Processor
	log       *zap.Logger
}

func NewOrchestrator(
	reload func() (*config.Config, error),
	factory SourceFactory,
	builder *Builder,
	fetcher *Fetcher,
	processor *Processor,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		reload:    reload,
		factory:   factory,
		builder:   builder,
		fetcher:   fetcher,
		processor: processor,
		log:       log,
	}
}

// Run loops over crawl cycles until the context is cancelled, or
// returns after one full pass when run_once is set. The configuration
// is re-read every cycle so source-list edits take effect without a
// restart. Cancellation is honored between cycles and between batches;
// a running batch always completes.
func (o *Orchestrator) Run(ctx context.Context) error {
	cfg, err := o.reload()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	state := CycleState{FirstCycle: true}
	for {
		o.log.Info("starting crawl cycle",
			zap.Int("cycle", state.Cycle),
			zap.Bool("first_cycle", state.FirstCycle),
			zap.Int("sources", len(cfg.NewsSources)))

		o.runCycle(ctx, cfg, state)

		if cfg.Settings.RunOnce {
			o.log.Info("run_once set, exiting after one pass")
			return nil
		}

		delay := time.Duration(cfg.Settings.CycleDelaySec) * time.Second
		select {
		case <-ctx.Done():
			o.log.Info("interrupted, exiting cleanly")
			return nil
		case <-time.After(delay):
		}

		if next, err := o.reload(); err != nil {
			o.log.Error("reloading configuration, keeping previous", zap.Error(err))
		} else {
			cfg = next
		}
		state = CycleState{Cycle: state.Cycle + 1}
	}
}

func (o *Orchestrator) runCycle(ctx context.Context, cfg *config.Config, state CycleState) {
	batches := Partition(cfg.Sources(), cfg.Settings.SourcesPerBatch)

	for i, batch := range batches {
		if ctx.Err() != nil {
			o.log.Info("interrupted, skipping remaining batches",
				zap.Int("remaining", len(batches)-i))
			return
		}

		urls := make([]string, len(batch))
		for j, sc := range batch {
			urls[j] = sc.BaseURL
		}
		o.log.Info("processing batch",
			zap.Int("batch", i+1),
			zap.Int("batches", len(batches)),
			zap.Strings("urls", urls))

		// Fresh sources per batch: the batch is the unit of memory
		// retention, discarded as soon as extraction finishes.
		sources := o.factory.Sources(batch, state)
		o.builder.BuildAll(sources)
		o.fetcher.FetchAll(sources)
		for _, src := range sources {
			o.processor.Process(src)
		}
	}
}
