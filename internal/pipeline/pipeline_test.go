package pipeline

import (
	"sync"
	"time"
)

// Shared fakes for the pipeline tests.

type fakeArticle struct {
	url       string
	title     string
	published time.Time
	hasDate   bool

	downloadErr error
	parseErr    error
	enrichErr   error

	mu         sync.Mutex
	downloads  int
	parses     int
	enriches   int
	serialized int
}

func (a *fakeArticle) Download() error {
	a.mu.Lock()
	a.downloads++
	a.mu.Unlock()
	return a.downloadErr
}

func (a *fakeArticle) Parse() error {
	a.mu.Lock()
	a.parses++
	a.mu.Unlock()
	return a.parseErr
}

func (a *fakeArticle) Enrich() error {
	a.mu.Lock()
	a.enriches++
	a.mu.Unlock()
	return a.enrichErr
}

func (a *fakeArticle) URL() string   { return a.url }
func (a *fakeArticle) Title() string { return a.title }

func (a *fakeArticle) PublishedAt() (time.Time, bool) { return a.published, a.hasDate }

func (a *fakeArticle) ArchiveJSON() ([]byte, error) {
	a.mu.Lock()
	a.serialized++
	a.mu.Unlock()
	return []byte(`{"title":"` + a.title + `"}`), nil
}

type fakeSource struct {
	baseURL  string
	brand    string
	buildErr error
	panics   bool

	mu       sync.Mutex
	builds   int
	articles []Article
}

func (s *fakeSource) Build() error {
	s.mu.Lock()
	s.builds++
	s.mu.Unlock()
	if s.panics {
		panic("malformed site")
	}
	return s.buildErr
}

func (s *fakeSource) BaseURL() string     { return s.baseURL }
func (s *fakeSource) Brand() string       { return s.brand }
func (s *fakeSource) Articles() []Article { return s.articles }

type savedDoc struct {
	brand string
	title string
}

type fakeWriter struct {
	mu      sync.Mutex
	saves   []savedDoc
	saveErr error
}

func (w *fakeWriter) Save(brand, title string, _ time.Time, _ bool, _ []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.saveErr != nil {
		return "", w.saveErr
	}
	w.saves = append(w.saves, savedDoc{brand: brand, title: title})
	return "/dev/null", nil
}
