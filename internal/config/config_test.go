package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
news_sources:
  exampleNews:
    base_url: https://example.com
settings:
  base_archive_dir: /var/archive/news
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Settings.MaxWorkers)
	assert.Equal(t, 4, cfg.Settings.FetchWorkers)
	assert.Equal(t, 2, cfg.Settings.SourcesPerBatch)
	assert.Equal(t, 50, cfg.Settings.MaxArticlesPerSource)
	assert.Equal(t, 30, cfg.Settings.TimeoutSec)
	assert.Equal(t, "strict", cfg.Settings.FilenameMode)
	assert.False(t, cfg.Settings.RunOnce)
	assert.NotEmpty(t, cfg.Settings.UserAgent)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
news_sources:
  exampleNews:
    base_url: https://example.com
    brand: Example
    feeds:
      - https://example.com/rss
settings:
  base_archive_dir: /var/archive/news
  run_once: true
  max_workers: 8
  sources_per_batch: 3
  filename_mode: lenient
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Settings.RunOnce)
	assert.Equal(t, 8, cfg.Settings.MaxWorkers)
	assert.Equal(t, 3, cfg.Settings.SourcesPerBatch)
	assert.Equal(t, "lenient", cfg.Settings.FilenameMode)

	srcs := cfg.Sources()
	require.Len(t, srcs, 1)
	assert.Equal(t, "Example", srcs[0].Brand)
	assert.Equal(t, []string{"https://example.com/rss"}, srcs[0].Feeds)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no sources",
			content: "settings:\n  base_archive_dir: /var/archive\n",
			wantErr: "no news sources",
		},
		{
			name: "source without base_url",
			content: `
news_sources:
  broken: {}
settings:
  base_archive_dir: /var/archive
`,
			wantErr: "base_url is required",
		},
		{
			name: "missing base_archive_dir",
			content: `
news_sources:
  exampleNews:
    base_url: https://example.com
`,
			wantErr: "base_archive_dir is required",
		},
		{
			name: "unknown filename mode",
			content: `
news_sources:
  exampleNews:
    base_url: https://example.com
settings:
  base_archive_dir: /var/archive
  filename_mode: windows
`,
			wantErr: "unknown mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSourcesAreOrderedAndBranded(t *testing.T) {
	path := writeConfig(t, `
news_sources:
  zebra:
    base_url: https://zebra.example
  alpha:
    base_url: https://alpha.example
settings:
  base_archive_dir: /var/archive
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	srcs := cfg.Sources()
	require.Len(t, srcs, 2)
	assert.Equal(t, "alpha", srcs[0].Brand)
	assert.Equal(t, "https://alpha.example", srcs[0].BaseURL)
	assert.Equal(t, "zebra", srcs[1].Brand)
}
