// Package scraper walks the Singapore Statutes Online listing and statute
// detail pages one request at a time.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sso-scraper/models"
)

// Fetcher is the subset of *fetcher.Fetcher the scraper needs.
type Fetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, int, error)
}

type Options struct {
	SiteURL           string
	PageDelay         time.Duration
	UseStatuteAcronym bool

	Logger   *slog.Logger
	Progress io.Writer // human readable progress lines, io.Discard when nil

	// Sleep waits between listing pages. Defaults to a context aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

type Scraper struct {
	fetcher  Fetcher
	opts     Options
	logger   *slog.Logger
	progress io.Writer
	sleep    func(ctx context.Context, d time.Duration) error
}

func New(f Fetcher, opts Options) *Scraper {
	if opts.SiteURL == "" {
		opts.SiteURL = models.DefaultSiteURL
	}
	s := &Scraper{
		fetcher:  f,
		opts:     opts,
		logger:   opts.Logger,
		progress: opts.Progress,
		sleep:    opts.Sleep,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.progress == nil {
		s.progress = io.Discard
	}
	if s.sleep == nil {
		s.sleep = sleepContext
	}
	return s
}

func (s *Scraper) printf(format string, args ...any) {
	fmt.Fprintf(s.progress, format, args...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
