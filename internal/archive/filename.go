package archive

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how aggressively titles are cleaned for the target
// filesystem. Strict follows the Windows rules (reserved characters
// stripped plus trailing dots and spaces trimmed); lenient strips the
// same characters but keeps trailing dots and spaces.
type Mode string

const (
	ModeStrict  Mode = "strict"
	ModeLenient Mode = "lenient"
)

// MaxFilenameLength is the default title length cap.
const MaxFilenameLength = 255

const fallbackTitle = "unknown_title"

const reservedChars = `<>:"/\|?*'`

// asciiFolds covers common runes that NFD decomposition does not reduce
// to ASCII.
var asciiFolds = map[rune]string{
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'ß': "ss",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "Th",
	'ł': "l", 'Ł': "L",
	'–': "-", '—': "-",
	'‘': "", '’': "", '“': "", '”': "",
}

// Sanitize maps an arbitrary article title to a filesystem-legal
// fragment of at most maxLen runes. It never fails: any internal error
// yields "unknown_title". Non-emptiness of the result is not
// guaranteed.
func Sanitize(title string, maxLen int, mode Mode) string {
	if maxLen <= 0 {
		maxLen = MaxFilenameLength
	}

	folded, err := transliterate(title)
	if err != nil {
		return fallbackTitle
	}

	var b strings.Builder
	for _, r := range folded {
		if strings.ContainsRune(reservedChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	clean := b.String()

	if mode == ModeStrict {
		clean = strings.TrimRight(clean, ". ")
	}

	if rs := []rune(clean); len(rs) > maxLen {
		clean = string(rs[:maxLen])
	}
	return clean
}

// transliterate folds the title to plain ASCII: combining marks are
// stripped after NFD decomposition, known special runes are mapped via
// asciiFolds, anything else non-ASCII is dropped.
func transliterate(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	decomposed, _, err := transform.String(t, s)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}
		if sub, ok := asciiFolds[r]; ok {
			b.WriteString(sub)
		}
	}
	return b.String(), nil
}
