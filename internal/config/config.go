package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrNoSource is returned when a named source profile does not exist.
var ErrNoSource = errors.New("unknown source profile")

// Config holds the full application configuration.
type Config struct {
	// OutputCSV is the persisted collection path
	OutputCSV string `mapstructure:"output_csv"`
	// Extraction tunes the field extraction heuristics
	Extraction Extraction `mapstructure:"extraction"`
	// Sources holds one profile per originating portal, keyed by name
	Sources map[string]Source `mapstructure:"sources"`
}

// Extraction holds the tunable extraction knobs.
type Extraction struct {
	// ProvinceMaxLen caps the free-text "Lieu" fallback for provinces
	ProvinceMaxLen int `mapstructure:"province_max_len"`
	// PaybackFallbackYears fills the payback period when neither it nor
	// the rate of return was readable; zero disables the fallback
	PaybackFallbackYears float64 `mapstructure:"payback_fallback_years"`
}

// Source describes one originating portal.
type Source struct {
	// Region is the region the portal covers
	Region string `mapstructure:"region"`
	// SourceType is the partition key its records carry; defaults to
	// "CRI <region>"
	SourceType string `mapstructure:"source_type"`
	// ListingURL is the project listing to crawl
	ListingURL string `mapstructure:"listing_url"`
	// PDFDir is where downloaded sheets are stored and read from
	PDFDir string `mapstructure:"pdf_dir"`
}

// Load reads the Viper-populated config into a Config struct and applies
// defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.OutputCSV == "" {
		cfg.OutputCSV = "output_projects.csv"
	}
	if cfg.Extraction.ProvinceMaxLen <= 0 {
		cfg.Extraction.ProvinceMaxLen = 40
	}
	return &cfg, nil
}

// SourceProfile resolves a named source profile, filling its derived
// defaults.
func (c *Config) SourceProfile(name string) (Source, error) {
	src, ok := c.Sources[name]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrNoSource, name)
	}
	if src.SourceType == "" && src.Region != "" {
		src.SourceType = "CRI " + src.Region
	}
	if src.PDFDir == "" {
		src.PDFDir = name
	}
	return src, nil
}
