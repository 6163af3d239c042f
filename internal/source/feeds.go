package source

import (
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"
)

// readFeed pulls one RSS/Atom feed and returns its items as article
// candidates. Feeds are the richest discovery channel: they carry the
// title and publish date before the article is ever fetched.
func (s *WebSource) readFeed(feedURL string) ([]candidate, error) {
	req, err := http.NewRequest(http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.factory.settings.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	items := make([]candidate, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Link == "" {
			continue
		}
		c := candidate{url: it.Link, title: it.Title}
		if it.PublishedParsed != nil {
			c.published = *it.PublishedParsed
			c.hasDate = true
		} else if it.UpdatedParsed != nil {
			c.published = *it.UpdatedParsed
			c.hasDate = true
		}
		items = append(items, c)
	}
	return items, nil
}
