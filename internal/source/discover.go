package source

import (
	"net/url"
	"sync"
	"time"

	"github.com/gocolly/colly"
	"go.uber.org/zap"
)

const (
	crawlDepth       = 2 // landing page plus one hop into sections
	crawlParallelism = 2
	feedLinkTypes    = "link[rel='alternate'][type='application/rss+xml'], link[rel='alternate'][type='application/atom+xml']"
)

// crawl walks the publisher's site from the base URL, one hop deep
// into section pages, and collects links that look like articles plus
// any advertised RSS/Atom feeds. It returns an error only when not a
// single page could be fetched.
func (s *WebSource) crawl(base *url.URL) (articles, feeds []string, err error) {
	c := colly.NewCollector(
		colly.AllowedDomains(allowedHosts(base)...),
		colly.UserAgent(s.factory.settings.UserAgent),
		colly.MaxDepth(crawlDepth),
		colly.Async(true),
	)
	c.SetRequestTimeout(time.Duration(s.factory.settings.TimeoutSec) * time.Second)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: crawlParallelism}); err != nil {
		return nil, nil, err
	}

	var (
		mu      sync.Mutex
		pages   int
		lastErr error
	)

	c.OnHTML(feedLinkTypes, func(e *colly.HTMLElement) {
		if u := e.Request.AbsoluteURL(e.Attr("href")); u != "" {
			mu.Lock()
			feeds = append(feeds, u)
			mu.Unlock()
		}
	})

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		u, err := url.Parse(link)
		if err != nil || !sameHost(u.Hostname(), base.Hostname()) {
			return
		}

		switch classifyPath(u.Path) {
		case pageArticle:
			mu.Lock()
			articles = append(articles, link)
			mu.Unlock()
		case pageSection:
			// depth bounded by MaxDepth, dedup handled by colly
			_ = e.Request.Visit(link)
		}
	})

	c.OnResponse(func(*colly.Response) {
		mu.Lock()
		pages++
		mu.Unlock()
	})

	c.OnError(func(r *colly.Response, visitErr error) {
		mu.Lock()
		lastErr = visitErr
		mu.Unlock()
		s.log.Debug("crawl request failed",
			zap.String("url", r.Request.URL.String()), zap.Error(visitErr))
	})

	if err := c.Visit(s.cfg.BaseURL); err != nil {
		return nil, nil, err
	}
	c.Wait()

	if pages == 0 && lastErr != nil {
		return nil, nil, lastErr
	}
	return articles, feeds, nil
}
