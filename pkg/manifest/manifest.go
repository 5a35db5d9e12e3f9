package manifest

// RunSummary is the YAML overview of one scrape run. It lets a reader check
// what a run produced without opening the CSV files.
type RunSummary struct {
	GeneratedAt     string           `yaml:"generated_at"`
	RunID           int64            `yaml:"run_id,omitempty"`
	ListingURL      string           `yaml:"listing_url"`
	PagesFetched    int              `yaml:"pages_fetched"`
	StopReason      string           `yaml:"stop_reason"`
	ListingError    string           `yaml:"listing_error,omitempty"`
	TotalStatutes   int              `yaml:"total_statutes"`
	Processed       int              `yaml:"processed"`
	Successful      int              `yaml:"successful"`
	Skipped         int              `yaml:"skipped"`
	Failed          int              `yaml:"failed"`
	TotalProvisions int              `yaml:"total_provisions"`
	DurationSeconds float64          `yaml:"duration_seconds"`
	Statutes        []StatuteSummary `yaml:"statutes,omitempty"`
	Files           []FileSummary    `yaml:"files,omitempty"`
}

// StatuteSummary is the detail-page outcome of a single statute.
type StatuteSummary struct {
	Name         string         `yaml:"name"`
	Acronym      string         `yaml:"acronym"`
	URL          string         `yaml:"url"`
	Status       string         `yaml:"status"` // "success", "skipped" or "failed"
	StatusCode   int            `yaml:"status_code,omitempty"`
	TOCFound     bool           `yaml:"toc_found"`
	Provisions   int            `yaml:"provisions"`
	SkippedLinks map[string]int `yaml:"skipped_links,omitempty"`
	Error        string         `yaml:"error,omitempty"`
}

// FileSummary describes one output file written by the run.
type FileSummary struct {
	Path      string `yaml:"path"`
	SizeBytes int64  `yaml:"size_bytes"`
}
