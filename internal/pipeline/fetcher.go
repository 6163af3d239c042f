package pipeline

import (
	"sync"

	"go.uber.org/zap"
)

const defaultFetchWorkers = 4

// Fetcher bulk-downloads article content across all of a batch's
// sources on a fixed-size worker pool.
type Fetcher struct {
	workers int
	log     *zap.Logger
}

func NewFetcher(workers int, log *zap.Logger) *Fetcher {
	if workers < 1 {
		workers = defaultFetchWorkers
	}
	return &Fetcher{workers: workers, log: log}
}

// FetchAll downloads every discovered article in the batch and blocks
// until all attempts finished. A failed download is logged and leaves
// that article unfetched for this cycle; it is not retried here.
func (f *Fetcher) FetchAll(sources []Source) {
	var articles []Article
	for _, src := range sources {
		articles = append(articles, src.Articles()...)
	}
	if len(articles) == 0 {
		return
	}

	jobs := make(chan Article)
	var wg sync.WaitGroup

	workers := min(f.workers, len(articles))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for art := range jobs {
				if err := art.Download(); err != nil {
					f.log.Warn("fetching article",
						zap.String("url", art.URL()), zap.Error(err))
				}
			}
		}()
	}

	for _, art := range articles {
		jobs <- art
	}
	close(jobs)
	wg.Wait()

	f.log.Debug("batch fetch finished", zap.Int("articles", len(articles)))
}
