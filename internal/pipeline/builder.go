package pipeline

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const defaultBuildWorkers = 5

// Builder runs source discovery for a batch on a bounded worker pool.
type Builder struct {
	maxWorkers int
	log        *zap.Logger
}

func NewBuilder(maxWorkers int, log *zap.Logger) *Builder {
	if maxWorkers < 1 {
		maxWorkers = defaultBuildWorkers
	}
	return &Builder{maxWorkers: maxWorkers, log: log}
}

// BuildAll builds every source in the batch concurrently and returns
// only once all of them finished. A failed build is logged with the
// offending URL and leaves that source with zero articles; siblings
// are unaffected.
func (b *Builder) BuildAll(sources []Source) {
	if len(sources) == 0 {
		return
	}

	jobs := make(chan Source)
	var wg sync.WaitGroup

	workers := min(b.maxWorkers, len(sources))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				if err := buildOne(src); err != nil {
					b.log.Error("building source",
						zap.String("url", src.BaseURL()), zap.Error(err))
					continue
				}
				b.log.Debug("source built",
					zap.String("url", src.BaseURL()),
					zap.Int("articles", len(src.Articles())))
			}
		}()
	}

	for _, src := range sources {
		jobs <- src
	}
	close(jobs)
	wg.Wait()
}

// buildOne contains panics from the crawl engine so one bad source
// cannot take down the pool.
func buildOne(src Source) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("build panic: %v", r)
		}
	}()
	return src.Build()
}
