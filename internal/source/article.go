package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"

	"news_archiver/internal/models"
)

const maxBodyBytes = 5 << 20

var (
	errUnexpectedStatus = errors.New("unexpected status code")
	errNotDownloaded    = errors.New("article not downloaded")
	errNotParsed        = errors.New("article not parsed")
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reBlockOpen  = regexp.MustCompile(`<(div|p|br|li|td|tr|h[1-6])[^>]*>`)
	reBlockClose = regexp.MustCompile(`</(div|p|li|td|tr|h[1-6])>`)
)

var metaDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// webArticle is one crawled page. It is created during discovery,
// populated during fetch and extraction, written once and discarded.
// Each article is touched by a single worker at a time, so no locking.
type webArticle struct {
	url       string
	brand     string
	client    *http.Client
	userAgent string

	title     string
	published time.Time
	hasDate   bool

	rawHTML    []byte
	downloaded bool
	extracted  *models.ExtractedArticle
	keywords   []string
	summary    string
}

func (a *webArticle) URL() string { return a.url }

func (a *webArticle) Title() string { return a.title }

func (a *webArticle) PublishedAt() (time.Time, bool) { return a.published, a.hasDate }

// Download fetches the page body, decoding it to UTF-8 from whatever
// charset the server declares. It is idempotent: a second call after
// a successful fetch is a no-op.
func (a *webArticle) Download() error {
	if a.downloaded {
		return nil
	}

	req, err := http.NewRequest(http.MethodGet, a.url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		utf8Reader = resp.Body
	}
	body, err := io.ReadAll(io.LimitReader(utf8Reader, maxBodyBytes))
	if err != nil {
		return err
	}

	a.rawHTML = body
	a.downloaded = true
	return nil
}

// Parse runs readability over the downloaded body and fills in title,
// text, excerpt and, when discovery did not already know it, the
// publish date.
func (a *webArticle) Parse() error {
	if a.extracted != nil {
		return nil
	}
	if !a.downloaded {
		return errNotDownloaded
	}

	pageURL, err := url.Parse(a.url)
	if err != nil {
		return err
	}

	art, err := readability.FromReader(bytes.NewReader(a.rawHTML), pageURL)
	if err != nil {
		return fmt.Errorf("readability: %w", err)
	}

	text, err := textFromHTML(art.Content)
	if err != nil {
		return err
	}

	if a.title == "" {
		a.title = strings.TrimSpace(art.Title)
	}
	if !a.hasDate {
		if art.PublishedTime != nil {
			a.published = *art.PublishedTime
			a.hasDate = true
		} else if t, ok := publishDateFromMeta(a.rawHTML); ok {
			a.published = t
			a.hasDate = true
		}
	}

	a.extracted = &models.ExtractedArticle{
		Title:   a.title,
		Text:    text,
		HTML:    art.Content,
		Excerpt: strings.TrimSpace(art.Excerpt),
	}
	return nil
}

// Enrich derives keywords and a short summary from the parsed text.
func (a *webArticle) Enrich() error {
	if a.extracted == nil {
		return errNotParsed
	}
	a.keywords = extractKeywords(a.extracted.Text, maxKeywords)
	a.summary = summarize(a.extracted.Text, a.keywords, summarySentences)
	return nil
}

// ArchiveJSON renders the article as the archive document.
func (a *webArticle) ArchiveJSON() ([]byte, error) {
	if a.extracted == nil {
		return nil, errNotParsed
	}

	doc := models.ArchiveDocument{
		Title:      a.extracted.Title,
		URL:        a.url,
		Brand:      a.brand,
		Text:       a.extracted.Text,
		HTML:       a.extracted.HTML,
		Excerpt:    a.extracted.Excerpt,
		Keywords:   a.keywords,
		Summary:    a.summary,
		ArchivedAt: time.Now().UTC(),
	}
	if a.hasDate {
		published := a.published
		doc.PublishedAt = &published
	}
	return json.MarshalIndent(doc, "", "  ")
}

// textFromHTML flattens readability's content HTML to normalized plain
// text. Block elements get padded with spaces first so words from
// adjacent blocks do not run together.
func textFromHTML(contentHTML string) (string, error) {
	padded := reBlockOpen.ReplaceAllString(contentHTML, " $0")
	padded = reBlockClose.ReplaceAllString(padded, "$0 ")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(padded))
	if err != nil {
		return "", err
	}
	doc.Find("figure, aside, script, style").Remove()

	text := reWhitespace.ReplaceAllString(doc.Text(), " ")
	return strings.TrimSpace(text), nil
}

// publishDateFromMeta scans the raw page for the usual publish-date
// markers when neither the feed nor readability produced one.
func publishDateFromMeta(rawHTML []byte) (time.Time, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return time.Time{}, false
	}

	var raw string
	if v, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		raw = v
	} else if v, ok := doc.Find(`time[datetime]`).Attr("datetime"); ok {
		raw = v
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range metaDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
