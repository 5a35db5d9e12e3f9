package manifest

import (
	"fmt"
	"math"
	"time"

	"github.com/dtnitsch/sso-scraper/models"
	"github.com/dtnitsch/sso-scraper/pkg/storage"
	"gopkg.in/yaml.v3"
)

// StatuteResult pairs the provisions of a statute with the error the
// provision fetcher returned for it, if any.
type StatuteResult struct {
	Provisions models.StatuteProvisions
	Error      error
}

// RunInfo carries the run-level facts the summary reports.
type RunInfo struct {
	RunID         int64
	ListingURL    string
	PagesFetched  int
	StopReason    string
	ListingError  error
	TotalStatutes int
	Duration      time.Duration
	Files         []string
}

// BuildSummary aggregates per-statute results into a RunSummary. File sizes
// are read through the storage layer; files that cannot be stat'ed are
// reported with size 0.
func BuildSummary(info RunInfo, results []StatuteResult, s *storage.Storage) RunSummary {
	summary := RunSummary{
		GeneratedAt:     time.Now().Format(time.RFC3339),
		RunID:           info.RunID,
		ListingURL:      info.ListingURL,
		PagesFetched:    info.PagesFetched,
		StopReason:      info.StopReason,
		TotalStatutes:   info.TotalStatutes,
		Processed:       len(results),
		DurationSeconds: math.Round(info.Duration.Seconds()*100) / 100,
	}
	if info.ListingError != nil {
		summary.ListingError = info.ListingError.Error()
	}

	for _, r := range results {
		sp := r.Provisions
		entry := StatuteSummary{
			Name:       sp.Statute,
			Acronym:    sp.Acronym,
			URL:        sp.DetailURL,
			StatusCode: sp.StatusCode,
			TOCFound:   sp.TOCFound,
			Provisions: len(sp.Provisions),
		}
		if len(sp.Skipped) > 0 {
			entry.SkippedLinks = sp.Skipped
		}

		switch {
		case r.Error != nil:
			summary.Failed++
			entry.Status = "failed"
			entry.Error = r.Error.Error()
		case sp.StatusCode < 200 || sp.StatusCode > 299:
			summary.Skipped++
			entry.Status = "skipped"
		default:
			summary.Successful++
			entry.Status = "success"
		}

		summary.TotalProvisions += entry.Provisions
		summary.Statutes = append(summary.Statutes, entry)
	}

	for _, path := range info.Files {
		file := FileSummary{Path: path}
		if stats, err := s.GetFileStats(path); err == nil {
			file.SizeBytes = stats.SizeBytes
		}
		summary.Files = append(summary.Files, file)
	}

	return summary
}

// WriteSummary marshals the summary as YAML and saves it to path.
func WriteSummary(path string, summary RunSummary, s *storage.Storage) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error marshalling summary: %w", err)
	}

	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("error saving summary: %w", err)
	}

	return nil
}
