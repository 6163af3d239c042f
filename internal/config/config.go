package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// ErrNoSources is returned when the configuration lists no news sources.
var ErrNoSources = errors.New("no news sources configured")

// SourceConfig describes one publisher to crawl.
type SourceConfig struct {
	BaseURL string   `yaml:"base_url"`
	Brand   string   `yaml:"brand"`
	Feeds   []string `yaml:"feeds"`
}

// Settings holds the crawl and archive knobs.
type Settings struct {
	BaseArchiveDir       string `yaml:"base_archive_dir"`
	RunOnce              bool   `yaml:"run_once"`
	MaxWorkers           int    `yaml:"max_workers"`
	FetchWorkers         int    `yaml:"fetch_workers"`
	SourcesPerBatch      int    `yaml:"sources_per_batch"`
	MaxArticlesPerSource int    `yaml:"max_articles_per_source"`
	TimeoutSec           int    `yaml:"timeout_sec"`
	UserAgent            string `yaml:"user_agent"`
	CycleDelaySec        int    `yaml:"cycle_delay_sec"`
	FilenameMode         string `yaml:"filename_mode"`
	LogLevel             string `yaml:"log_level"`
	LogEncoding          string `yaml:"log_encoding"`
}

type Config struct {
	NewsSources map[string]SourceConfig `yaml:"news_sources"`
	Settings    Settings                `yaml:"settings"`
}

// LoadConfig reads, defaults and validates the YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	s := &c.Settings
	if s.MaxWorkers <= 0 {
		s.MaxWorkers = 5
	}
	if s.FetchWorkers <= 0 {
		s.FetchWorkers = 4
	}
	if s.SourcesPerBatch <= 0 {
		s.SourcesPerBatch = 2
	}
	if s.MaxArticlesPerSource <= 0 {
		s.MaxArticlesPerSource = 50
	}
	if s.TimeoutSec <= 0 {
		s.TimeoutSec = 30
	}
	if s.UserAgent == "" {
		s.UserAgent = "Mozilla/5.0 (NewsArchiver/1.0)"
	}
	if s.FilenameMode == "" {
		s.FilenameMode = "strict"
	}
}

func (c *Config) validate() error {
	if len(c.NewsSources) == 0 {
		return ErrNoSources
	}
	for name, src := range c.NewsSources {
		if src.BaseURL == "" {
			return fmt.Errorf("news source %q: base_url is required", name)
		}
	}
	if c.Settings.BaseArchiveDir == "" {
		return errors.New("settings.base_archive_dir is required")
	}
	if m := c.Settings.FilenameMode; m != "strict" && m != "lenient" {
		return fmt.Errorf("settings.filename_mode: unknown mode %q", m)
	}
	return nil
}

// Sources returns the configured publishers ordered by name, with the
// brand defaulted to the map key. Stable order keeps batch contents
// deterministic across cycles.
func (c *Config) Sources() []SourceConfig {
	names := make([]string, 0, len(c.NewsSources))
	for name := range c.NewsSources {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]SourceConfig, 0, len(names))
	for _, name := range names {
		src := c.NewsSources[name]
		if src.Brand == "" {
			src.Brand = name
		}
		out = append(out, src)
	}
	return out
}
