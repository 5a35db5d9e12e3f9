package scraper

import (
	"context"
	"fmt"

	"github.com/dtnitsch/sso-scraper/models"
	"github.com/dtnitsch/sso-scraper/pkg/acronym"
	"github.com/dtnitsch/sso-scraper/pkg/fetcher"
	"github.com/dtnitsch/sso-scraper/pkg/parser"
)

// FetchProvisions fetches the whole-document page of one statute and returns
// its provisions in page order.
//
// A non-2xx answer or a page without a TOC panel gives an empty result and a
// nil error. Transport failures give an empty result and the error.
func (s *Scraper) FetchProvisions(ctx context.Context, statute string) (models.StatuteProvisions, error) {
	code := acronym.Derive(statute)
	result := models.StatuteProvisions{
		Statute:   statute,
		Acronym:   code,
		DetailURL: acronym.DetailURL(s.opts.SiteURL, code),
		Skipped:   map[string]int{},
	}

	doc, status, err := s.fetcher.Document(ctx, result.DetailURL)
	result.StatusCode = status
	if err != nil {
		s.printf("Error processing %s: %s\n", statute, err)
		s.logger.Error("statute page fetch failed", "statute", statute, "url", result.DetailURL, "error", err)
		return result, fmt.Errorf("fetching %s: %w", statute, err)
	}
	if !fetcher.IsSuccess(status) {
		s.logger.Info("statute page unavailable", "statute", statute, "url", result.DetailURL, "status", status)
		return result, nil
	}

	linkCode := acronym.FixedProvisionAcronym
	if s.opts.UseStatuteAcronym {
		linkCode = code
	}
	page := parser.ParseProvisions(doc, func(provID string) string {
		return acronym.ProvisionURL(s.opts.SiteURL, linkCode, provID)
	})

	result.TOCFound = page.TOCFound
	result.Provisions = page.Provisions
	for outcome, n := range page.Skipped {
		result.Skipped[outcome.String()] = n
	}

	s.logger.Info("statute parsed",
		"statute", statute,
		"acronym", code,
		"toc_found", page.TOCFound,
		"provisions", len(page.Provisions),
		"skipped_no_label", page.Skipped[parser.LinkNoLabel],
		"skipped_malformed", page.Skipped[parser.LinkMalformed],
	)
	return result, nil
}
