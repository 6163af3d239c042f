// Package source implements the crawl engine behind the pipeline's
// Source and Article capabilities: discovery via an async site crawl,
// RSS/Atom feeds and sitemaps, charset-aware download, readability
// extraction and keyword/summary enrichment.
package source

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"news_archiver/internal/config"
	"news_archiver/internal/pipeline"
)

const maxRedirectHops = 15

// Factory creates fresh WebSource values per batch. It also owns the
// cross-cycle discovery memo: a source rebuilt in a later cycle yields
// only article URLs it has not produced before. The memo is reset on
// the first cycle so a restarted process crawls everything from
// scratch.
type Factory struct {
	settings config.Settings
	log      *zap.Logger

	mu   sync.Mutex
	memo map[string]map[string]bool // base URL → discovered article URLs
}

func NewFactory(settings config.Settings, log *zap.Logger) *Factory {
	return &Factory{
		settings: settings,
		log:      log,
		memo:     make(map[string]map[string]bool),
	}
}

// Sources returns one fresh WebSource per publisher config. Source
// values are never reused across batches or cycles.
func (f *Factory) Sources(cfgs []config.SourceConfig, state pipeline.CycleState) []pipeline.Source {
	if state.FirstCycle {
		f.mu.Lock()
		f.memo = make(map[string]map[string]bool)
		f.mu.Unlock()
	}

	out := make([]pipeline.Source, 0, len(cfgs))
	for _, sc := range cfgs {
		out = append(out, f.newWebSource(sc))
	}
	return out
}

// markNew records the URL in the memo of the given base URL and
// reports whether it was unseen.
func (f *Factory) markNew(baseURL, articleURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen, ok := f.memo[baseURL]
	if !ok {
		seen = make(map[string]bool)
		f.memo[baseURL] = seen
	}
	if seen[articleURL] {
		return false
	}
	seen[articleURL] = true
	return true
}

func (f *Factory) newWebSource(sc config.SourceConfig) *WebSource {
	return &WebSource{
		cfg:     sc,
		factory: f,
		client: &http.Client{
			Timeout: time.Duration(f.settings.TimeoutSec) * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirectHops {
					return fmt.Errorf("stopped after %d redirects", maxRedirectHops)
				}
				return nil
			},
		},
		log: f.log.With(zap.String("source", sc.BaseURL)),
	}
}

// candidate is one discovered article URL together with whatever
// metadata discovery already produced (feeds carry title and date).
type candidate struct {
	url       string
	title     string
	published time.Time
	hasDate   bool
}

// WebSource is one publisher inside one batch. Its article list is
// populated by Build and mutated by no one else.
type WebSource struct {
	cfg      config.SourceConfig
	factory  *Factory
	client   *http.Client
	articles []pipeline.Article
	log      *zap.Logger
}

func (s *WebSource) BaseURL() string { return s.cfg.BaseURL }

func (s *WebSource) Brand() string { return s.cfg.Brand }

func (s *WebSource) Articles() []pipeline.Article { return s.articles }

// Build discovers article candidates from the publisher's feeds, its
// sitemap and a shallow crawl of its site, filters them through the
// factory's memo and caps the result at max_articles_per_source.
// Discovery failing on every channel is a source-level error; a single
// failed channel only degrades the candidate set.
func (s *WebSource) Build() error {
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing base url: %w", err)
	}

	var (
		ordered []candidate
		byURL   = make(map[string]int)
	)
	add := func(c candidate) {
		c.url = normalizeURL(c.url)
		if i, ok := byURL[c.url]; ok {
			// feeds carry metadata the crawl does not; keep the richer one
			if !ordered[i].hasDate && c.hasDate {
				ordered[i].title = c.title
				ordered[i].published = c.published
				ordered[i].hasDate = true
			}
			return
		}
		byURL[c.url] = len(ordered)
		ordered = append(ordered, c)
	}

	crawled, advertisedFeeds, crawlErr := s.crawl(base)
	if crawlErr != nil {
		s.log.Warn("site crawl failed", zap.Error(crawlErr))
	}

	feedURLs := append(append([]string{}, s.cfg.Feeds...), advertisedFeeds...)
	feedsRead := 0
	for _, fu := range dedupStrings(feedURLs) {
		items, err := s.readFeed(fu)
		if err != nil {
			s.log.Warn("reading feed", zap.String("feed", fu), zap.Error(err))
			continue
		}
		feedsRead++
		for _, it := range items {
			add(it)
		}
	}

	sitemapURLs, err := s.readSitemap(base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String(), 0)
	if err != nil {
		// most sites simply have none
		s.log.Debug("reading sitemap", zap.Error(err))
	}
	for _, u := range sitemapURLs {
		add(candidate{url: u})
	}
	for _, u := range crawled {
		add(candidate{url: u})
	}

	if len(ordered) == 0 && crawlErr != nil && feedsRead == 0 {
		return fmt.Errorf("discovery failed for %s: %w", s.cfg.BaseURL, crawlErr)
	}

	fresh := 0
	for _, c := range ordered {
		if len(s.articles) >= s.factory.settings.MaxArticlesPerSource {
			break
		}
		if !s.factory.markNew(s.cfg.BaseURL, c.url) {
			continue
		}
		fresh++
		s.articles = append(s.articles, &webArticle{
			url:       c.url,
			brand:     s.cfg.Brand,
			title:     c.title,
			published: c.published,
			hasDate:   c.hasDate,
			client:    s.client,
			userAgent: s.factory.settings.UserAgent,
		})
	}

	s.log.Info("source built",
		zap.Int("candidates", len(ordered)),
		zap.Int("new_articles", fresh))
	return nil
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
