package models

import "time"

// ExtractedArticle holds what readability pulled out of one page.
type ExtractedArticle struct {
	Title   string
	Text    string
	HTML    string
	Excerpt string
}

// ArchiveDocument is the JSON document written to the archive tree,
// one file per article.
type ArchiveDocument struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Brand       string     `json:"brand"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Text        string     `json:"text"`
	HTML        string     `json:"html,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	ArchivedAt  time.Time  `json:"archived_at"`
}
