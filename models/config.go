// Package models defines data structures for configuration and scraped records.
package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListingURL = "https://sso.agc.gov.sg/Browse/Act/Current/All?PageSize=500&SortBy=Title&SortOrder=ASC"
	DefaultSiteURL    = "https://sso.agc.gov.sg"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	DefaultMaxPages     = 10
	DefaultStatuteLimit = 10
	DefaultPageDelay    = time.Second

	DefaultStatutesFile   = "statutes.csv"
	DefaultProvisionsFile = "provisions.csv"
)

// ScrapeConfig holds runtime configuration for a scrape run.
// Values come from defaults, then an optional YAML file, then CLI flags.
type ScrapeConfig struct {
	ListingURL string `yaml:"listing_url"`
	SiteURL    string `yaml:"site_url"`
	UserAgent  string `yaml:"user_agent"`

	MaxPages     int           `yaml:"max_pages"`
	StatuteLimit int           `yaml:"statute_limit"`
	PageDelay    time.Duration `yaml:"page_delay"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"` // 0 means no timeout

	StatutesFile   string `yaml:"statutes_file"`
	ProvisionsFile string `yaml:"provisions_file"`
	IncludeContent bool   `yaml:"include_content"`

	// Provision links are built with the fixed AA2004 code unless this is set.
	UseStatuteAcronym bool `yaml:"use_statute_acronym"`

	DBPath      string `yaml:"db_path,omitempty"`
	SummaryFile string `yaml:"summary_file,omitempty"`
}

// DefaultScrapeConfig returns the configuration used when nothing is overridden.
func DefaultScrapeConfig() ScrapeConfig {
	return ScrapeConfig{
		ListingURL:     DefaultListingURL,
		SiteURL:        DefaultSiteURL,
		UserAgent:      DefaultUserAgent,
		MaxPages:       DefaultMaxPages,
		StatuteLimit:   DefaultStatuteLimit,
		PageDelay:      DefaultPageDelay,
		StatutesFile:   DefaultStatutesFile,
		ProvisionsFile: DefaultProvisionsFile,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (ScrapeConfig, error) {
	cfg := DefaultScrapeConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem found in the config.
func (c ScrapeConfig) Validate() error {
	switch {
	case c.ListingURL == "":
		return errors.New("listing_url must not be empty")
	case c.SiteURL == "":
		return errors.New("site_url must not be empty")
	case c.MaxPages < 0:
		return fmt.Errorf("max_pages must not be negative, got %d", c.MaxPages)
	case c.StatuteLimit < 0:
		return fmt.Errorf("statute_limit must not be negative, got %d", c.StatuteLimit)
	case c.PageDelay < 0:
		return fmt.Errorf("page_delay must not be negative, got %s", c.PageDelay)
	case c.StatutesFile == "" || c.ProvisionsFile == "":
		return errors.New("output file names must not be empty")
	}
	return nil
}
