package archive

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Writer persists one serialized article per file. Writes are
// single-shot: open, write the whole document, close.
type Writer struct {
	resolver *Resolver
	mode     Mode
	log      *zap.Logger
}

func NewWriter(baseDir string, mode Mode, log *zap.Logger) *Writer {
	return &Writer{
		resolver: &Resolver{BaseDir: baseDir},
		mode:     mode,
		log:      log,
	}
}

// Save writes the document under the resolved archive path and returns
// that path. An unknown publish date is a recorded degradation, not a
// skip: the article lands under brand/0/00.
func (w *Writer) Save(brand, title string, published time.Time, hasDate bool, doc []byte) (string, error) {
	if !hasDate {
		w.log.Warn("publish date unknown, archiving under zero date",
			zap.String("brand", brand), zap.String("title", title))
	}

	cleanTitle := Sanitize(title, MaxFilenameLength, w.mode)
	dir, path := w.resolver.Resolve(brand, cleanTitle, published, hasDate)

	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	w.log.Info("article archived", zap.String("path", path))
	return path, nil
}
