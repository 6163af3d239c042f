// Package pipeline drives the batched crawl-extract-persist cycle. It
// depends on the crawl engine only through the Source and Article
// capability interfaces below.
package pipeline

import (
	"time"

	"news_archiver/internal/config"
)

// Source is one publisher inside a batch. A Source value is created
// fresh for every batch, built exactly once, and discarded after its
// articles are processed. Its article list is mutated only by the
// worker task building or fetching it.
type Source interface {
	// Build discovers the source's article candidates as a side
	// effect on its own article list.
	Build() error
	BaseURL() string
	Brand() string
	Articles() []Article
}

// Article is one crawled page. Download is idempotent so the
// extraction loop may call it again after the bulk fetch phase.
type Article interface {
	Download() error
	Parse() error
	Enrich() error
	URL() string
	Title() string
	// PublishedAt reports the publish date and whether one is known.
	PublishedAt() (time.Time, bool)
	// ArchiveJSON renders the enriched article as the archive document.
	ArchiveJSON() ([]byte, error)
}

// SourceFactory creates fresh Source values for one batch.
type SourceFactory interface {
	Sources(cfgs []config.SourceConfig, state CycleState) []Source
}

// ArchiveWriter persists one serialized article.
type ArchiveWriter interface {
	Save(brand, title string, published time.Time, hasDate bool, doc []byte) (string, error)
}
