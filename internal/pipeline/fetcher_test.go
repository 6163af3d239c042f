package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFetchAllAttemptsEveryArticle(t *testing.T) {
	arts := []*fakeArticle{
		{url: "https://a.example/1"},
		{url: "https://a.example/2", downloadErr: errors.New("timeout")},
		{url: "https://b.example/1"},
		{url: "https://b.example/2"},
	}
	sources := []Source{
		&fakeSource{baseURL: "https://a.example", articles: []Article{arts[0], arts[1]}},
		&fakeSource{baseURL: "https://b.example", articles: []Article{arts[2], arts[3]}},
	}

	NewFetcher(2, zap.NewNop()).FetchAll(sources)

	for _, a := range arts {
		assert.Equal(t, 1, a.downloads, "article %s must be attempted once", a.url)
	}
}

// blockingArticle counts concurrent Download calls.
type blockingArticle struct {
	fakeArticle
	inflight *int32
	peak     *int32
	peakMu   *sync.Mutex
}

func (a *blockingArticle) Download() error {
	n := atomic.AddInt32(a.inflight, 1)
	a.peakMu.Lock()
	if n > *a.peak {
		*a.peak = n
	}
	a.peakMu.Unlock()

	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(a.inflight, -1)
	return nil
}

func TestFetchAllBoundsConcurrency(t *testing.T) {
	var (
		inflight int32
		peak     int32
		peakMu   sync.Mutex
	)

	var articles []Article
	for i := 0; i < 16; i++ {
		articles = append(articles, &blockingArticle{
			inflight: &inflight, peak: &peak, peakMu: &peakMu,
		})
	}
	src := &fakeSource{baseURL: "https://a.example", articles: articles}

	NewFetcher(4, zap.NewNop()).FetchAll([]Source{src})

	peakMu.Lock()
	defer peakMu.Unlock()
	assert.LessOrEqual(t, peak, int32(4))
	assert.Greater(t, peak, int32(0))
}

func TestFetchAllNoArticles(t *testing.T) {
	NewFetcher(4, zap.NewNop()).FetchAll([]Source{&fakeSource{baseURL: "https://a.example"}})
}
