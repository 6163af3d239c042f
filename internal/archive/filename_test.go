package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFoldsAndStrips(t *testing.T) {
	tests := []struct {
		name  string
		title string
		mode  Mode
		want  string
	}{
		{
			name:  "diacritics folded to ascii",
			title: "Exámple: \"Test\"/*",
			mode:  ModeStrict,
			want:  "Example Test",
		},
		{
			name:  "all reserved characters stripped",
			title: `a<b>c:d"e/f\g|h?i*j'k`,
			mode:  ModeLenient,
			want:  "abcdefghijk",
		},
		{
			name:  "strict trims trailing dots and spaces",
			title: "Breaking news... ",
			mode:  ModeStrict,
			want:  "Breaking news",
		},
		{
			name:  "lenient keeps trailing dots and spaces",
			title: "Breaking news... ",
			mode:  ModeLenient,
			want:  "Breaking news... ",
		},
		{
			name:  "non-decomposable runes folded",
			title: "Æon — Łódź øre ß",
			mode:  ModeStrict,
			want:  "AEon - Lodz ore ss",
		},
		{
			name:  "unmapped non-ascii dropped",
			title: "新闻 headline 速报",
			mode:  ModeStrict,
			want:  " headline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.title, MaxFilenameLength, tt.mode))
		})
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 100)

	got := Sanitize(long, 20, ModeStrict)
	assert.Len(t, got, 20)

	got = Sanitize(long, 0, ModeStrict)
	assert.LessOrEqual(t, len(got), MaxFilenameLength)
}

func TestSanitizeNeverContainsReserved(t *testing.T) {
	titles := []string{
		"Exámple: \"Test\"/*",
		`<<<>>>|||???***`,
		"plain title",
		"",
		"日本語のタイトル: 速報?",
	}
	for _, title := range titles {
		for _, mode := range []Mode{ModeStrict, ModeLenient} {
			got := Sanitize(title, MaxFilenameLength, mode)
			assert.NotContains(t, got, `<`)
			assert.False(t, strings.ContainsAny(got, reservedChars),
				"sanitized %q (mode %s) still contains reserved chars: %q", title, mode, got)
		}
	}
}
