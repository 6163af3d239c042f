package source

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	maxSitemapBytes     = 2 << 20
	maxChildSitemaps    = 3
	maxSitemapRecursion = 1
)

// sitemapDoc covers both a plain urlset and a sitemap index; XML
// unmarshalling ignores the root element name.
type sitemapDoc struct {
	URLs     []sitemapEntry `xml:"url"`
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// readSitemap fetches a sitemap and returns the article-looking URLs
// it lists. Index sitemaps are followed one level deep, a few children
// at most; news sites put the freshest articles first.
func (s *WebSource) readSitemap(sitemapURL string, depth int) ([]string, error) {
	req, err := http.NewRequest(http.MethodGet, sitemapURL, nil)
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

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapBytes))
	if err != nil {
		return nil, err
	}

	var doc sitemapDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	var out []string
	for _, entry := range doc.URLs {
		u, err := url.Parse(entry.Loc)
		if err != nil {
			continue
		}
		if classifyPath(u.Path) == pageArticle {
			out = append(out, entry.Loc)
		}
	}

	if depth < maxSitemapRecursion {
		for i, child := range doc.Sitemaps {
			if i >= maxChildSitemaps {
				break
			}
			childURLs, err := s.readSitemap(child.Loc, depth+1)
			if err != nil {
				continue
			}
			out = append(out, childURLs...)
		}
	}
	return out, nil
}
