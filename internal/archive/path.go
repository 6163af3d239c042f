// Package archive maps extracted articles to dated, per-publisher
// JSON files on disk.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TimestampLayout is the one string timestamp shape accepted besides
// pre-parsed time values.
const TimestampLayout = "2006-01-02T15:04:05"

// DateParts is the year/month/day triple used for archive paths. Month
// and day are kept zero-padded as they appear in filenames.
type DateParts struct {
	Year  int
	Month string
	Day   string
}

// PartsFromString parses a "2006-01-02T15:04:05" timestamp. Malformed
// input reports ok=false instead of an error; callers substitute zero
// parts and carry on.
func PartsFromString(ts string) (DateParts, bool) {
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		return DateParts{}, false
	}
	return PartsFromTime(t), true
}

// PartsFromTime extracts the date parts of a parsed timestamp.
func PartsFromTime(t time.Time) DateParts {
	return DateParts{
		Year:  t.Year(),
		Month: fmt.Sprintf("%02d", int(t.Month())),
		Day:   fmt.Sprintf("%02d", t.Day()),
	}
}

func zeroParts() DateParts {
	return DateParts{Year: 0, Month: "00"}
}

// Resolver turns (brand, publish date, sanitized title) into an archive
// file path under BaseDir. The mapping is a pure function of its
// inputs: identical inputs resolve to the identical path, and
// collisions overwrite (last write wins).
type Resolver struct {
	BaseDir string
}

// Resolve returns the directory and full file path for one article.
//
// Filename rule: "YYYY-MM-DD <title>.json" when the publish date is
// known, "00-00 <title>.json" when it is not. The directory is
// base/brand/<year>/<month> with the year as a plain integer (0 when
// unknown) and the month zero-padded.
func (r *Resolver) Resolve(brand, cleanTitle string, published time.Time, hasDate bool) (dir, path string) {
	parts := zeroParts()
	if hasDate {
		parts = PartsFromTime(published)
	}

	dir = filepath.Join(r.BaseDir, brand, strconv.Itoa(parts.Year), parts.Month)

	var name string
	if hasDate {
		name = fmt.Sprintf("%02d-%s-%s %s.json", parts.Year, parts.Month, parts.Day, cleanTitle)
	} else {
		name = fmt.Sprintf("%02d-%s %s.json", parts.Year, parts.Month, cleanTitle)
	}
	return dir, filepath.Join(dir, name)
}

// EnsureDir creates the directory recursively. An existing directory
// is success, also under concurrent creation of sibling paths.
func EnsureDir(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}
