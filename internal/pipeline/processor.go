package pipeline

import (
	"fmt"

	"go.uber.org/zap"
)

// Processor runs the per-article extraction loop after the bulk fetch
// phase: download (idempotent) → parse → enrich → serialize → save.
type Processor struct {
	writer ArchiveWriter
	log    *zap.Logger
}

func NewProcessor(writer ArchiveWriter, log *zap.Logger) *Processor {
	return &Processor{writer: writer, log: log}
}

// Process handles one built source sequentially. Every failure is
// contained per article: the loop always reaches the remaining
// articles of the same source.
func (p *Processor) Process(src Source) {
	for _, art := range src.Articles() {
		if err := p.processArticle(src, art); err != nil {
			p.log.Error("processing article",
				zap.String("source", src.BaseURL()),
				zap.String("url", art.URL()),
				zap.Error(err))
		}
	}
}

func (p *Processor) processArticle(src Source, art Article) (err error) {
	// Third-party HTML parsers can panic on pathological markup.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extraction panic: %v", r)
		}
	}()

	if err := art.Download(); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	if err := art.Parse(); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := art.Enrich(); err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	doc, err := art.ArchiveJSON()
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	published, hasDate := art.PublishedAt()
	if _, err := p.writer.Save(src.Brand(), art.Title(), published, hasDate, doc); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
