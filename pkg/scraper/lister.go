package scraper

import (
	"context"
	"fmt"

	"github.com/dtnitsch/sso-scraper/models"
	"github.com/dtnitsch/sso-scraper/pkg/parser"
)

// StopReason says why pagination ended.
type StopReason string

const (
	StopNoTable  StopReason = "no_table"
	StopNoNew    StopReason = "no_new_statutes"
	StopMaxPages StopReason = "max_pages"
	StopError    StopReason = "error"
	StopCanceled StopReason = "canceled"
)

// ListResult holds the statutes gathered by ListStatutes. Statutes is valid
// even when pagination was aborted by an error.
type ListResult struct {
	Statutes []string
	Pages    int // listing pages requested
	Stop     StopReason
}

// PageURL returns the listing URL for a zero based page index.
func PageURL(baseURL string, page int) string {
	if page == 0 {
		return baseURL
	}
	return fmt.Sprintf("%s/%d", baseURL, page)
}

// ListStatutes pages through the listing at baseURL collecting unique,
// year-suffixed statute names in first-seen order. It stops at the first page
// without a listing table, the first page adding no new names, or after
// maxPages pages. A fetch error stops pagination and is returned together with
// the names collected so far.
func (s *Scraper) ListStatutes(ctx context.Context, baseURL string, maxPages int) (ListResult, error) {
	if maxPages <= 0 {
		maxPages = models.DefaultMaxPages
	}

	result := ListResult{Stop: StopMaxPages}
	seen := map[string]struct{}{}

	for page := 0; page < maxPages; page++ {
		url := PageURL(baseURL, page)
		s.printf("Fetching page %d: %s\n", page+1, url)
		result.Pages++

		doc, status, err := s.fetcher.Document(ctx, url)
		if err != nil {
			s.printf("Error: %s\n", err)
			s.logger.Error("listing page fetch failed", "page", page+1, "url", url, "error", err)
			result.Stop = StopError
			return result, fmt.Errorf("listing page %d: %w", page+1, err)
		}

		listing := parser.ParseListing(doc)
		if !listing.TableFound {
			s.printf("No statutes table found\n")
			s.logger.Info("listing table missing, stopping", "page", page+1, "status", status)
			result.Stop = StopNoTable
			return result, nil
		}

		var fresh []string
		for _, name := range listing.Names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			fresh = append(fresh, name)
		}
		if len(fresh) == 0 {
			s.printf("No new statutes found\n")
			result.Stop = StopNoNew
			return result, nil
		}

		result.Statutes = append(result.Statutes, fresh...)
		s.printf("Added %d statutes\n", len(fresh))
		s.logger.Info("listing page parsed", "page", page+1, "added", len(fresh), "total", len(result.Statutes))

		if err := s.sleep(ctx, s.opts.PageDelay); err != nil {
			result.Stop = StopCanceled
			return result, fmt.Errorf("waiting after listing page %d: %w", page+1, err)
		}
	}

	return result, nil
}
