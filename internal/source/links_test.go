package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPath(t *testing.T) {
	tests := []struct {
		path string
		want pageKind
	}{
		{"/2024/03/05/world-leaders-meet", pageArticle},
		{"/2024/mar/5/match-report", pageArticle},
		{"/news/world-leaders-meet-to-discuss-trade", pageArticle},
		{"/politics", pageSection},
		{"/news/politics", pageSection},
		{"/", pageSkip},
		{"", pageSkip},
		{"/styles/app.css", pageSkip},
		{"/images/logo.png", pageSkip},
		{"/video/clip-of-the-day-goes-here", pageSkip},
		{"/tag/economy", pageSkip},
		{"/about", pageSkip},
		{"/a/b/c/d", pageSkip},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyPath(tt.path), "path %q", tt.path)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/news/a?utm=x#frag", "https://example.com/news/a"},
		{"https://example.com/news/a", "https://example.com/news/a"},
		{"//example.com/news", "https://example.com/news"},
		{"://bad url", "://bad url"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeURL(tt.in), "url %q", tt.in)
	}
}

func TestSameHost(t *testing.T) {
	assert.True(t, sameHost("www.example.com", "example.com"))
	assert.True(t, sameHost("example.com", "example.com"))
	assert.False(t, sameHost("other.com", "example.com"))
}
