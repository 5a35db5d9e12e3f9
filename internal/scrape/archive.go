package scrape

import (
	"fmt"

	"github.com/dtnitsch/sso-scraper/pkg/acronym"
	"github.com/dtnitsch/sso-scraper/pkg/db"
	"github.com/dtnitsch/sso-scraper/pkg/fetcher"
	"github.com/dtnitsch/sso-scraper/pkg/manifest"
	"github.com/dtnitsch/sso-scraper/pkg/scraper"
)

// archiveRun stores one run in the database: the listing, every detail page
// outcome and every HTTP request made. results line up with the head of
// listing.Statutes.
func archiveRun(database *db.DB, listingURL string, listing scraper.ListResult, results []manifest.StatuteResult, accesses []fetcher.Access) (int64, error) {
	runID, err := database.CreateRun(listingURL)
	if err != nil {
		return 0, err
	}

	acronyms := make([]string, len(listing.Statutes))
	for i, name := range listing.Statutes {
		acronyms[i] = acronym.Derive(name)
	}
	statuteIDs, err := database.InsertStatutes(runID, listing.Statutes, acronyms)
	if err != nil {
		return runID, err
	}

	stats := db.RunStats{
		PagesFetched: listing.Pages,
		StopReason:   string(listing.Stop),
		StatuteCount: len(listing.Statutes),
	}
	for i, r := range results {
		if err := database.SaveStatuteProvisions(statuteIDs[i], r.Provisions, r.Error); err != nil {
			return runID, fmt.Errorf("archiving %s: %w", r.Provisions.Statute, err)
		}
		stats.ProvisionCount += len(r.Provisions.Provisions)
		if r.Error != nil || !fetcher.IsSuccess(r.Provisions.StatusCode) {
			stats.FailedCount++
		}
	}

	for _, a := range accesses {
		urlID, err := database.InsertURL(a.URL)
		if err != nil {
			return runID, err
		}
		success := a.Err == nil && fetcher.IsSuccess(a.StatusCode)
		if err := database.RecordAccess(runID, urlID, a.StatusCode, accessErrorType(a), success); err != nil {
			return runID, err
		}
	}

	if err := database.FinishRun(runID, stats); err != nil {
		return runID, err
	}
	return runID, nil
}

func accessErrorType(a fetcher.Access) string {
	switch {
	case a.Err != nil:
		return "fetch_error"
	case !fetcher.IsSuccess(a.StatusCode):
		return "http_status"
	}
	return ""
}
