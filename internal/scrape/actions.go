package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/sso-scraper/models"
	"github.com/dtnitsch/sso-scraper/pkg/db"
	"github.com/dtnitsch/sso-scraper/pkg/fetcher"
	"github.com/dtnitsch/sso-scraper/pkg/manifest"
	"github.com/dtnitsch/sso-scraper/pkg/scraper"
	"github.com/dtnitsch/sso-scraper/pkg/storage"
	"github.com/urfave/cli/v2"
)

func ScrapeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := ResolveConfig(c)
	if err != nil {
		return err
	}

	return Run(c.Context, cfg, logger, os.Stdout)
}

// ResolveConfig layers the config file (when --config is given) over the
// defaults, then applies every flag the user set explicitly.
func ResolveConfig(c *cli.Context) (models.ScrapeConfig, error) {
	cfg := models.DefaultScrapeConfig()
	if c.IsSet("config") {
		loaded, err := models.LoadConfig(c.String("config"))
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("listing-url") {
		cfg.ListingURL = c.String("listing-url")
	}
	if c.IsSet("site-url") {
		cfg.SiteURL = c.String("site-url")
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("max-pages") {
		cfg.MaxPages = c.Int("max-pages")
	}
	if c.IsSet("limit") {
		cfg.StatuteLimit = c.Int("limit")
	}
	if c.IsSet("statutes-out") {
		cfg.StatutesFile = c.String("statutes-out")
	}
	if c.IsSet("provisions-out") {
		cfg.ProvisionsFile = c.String("provisions-out")
	}
	if c.IsSet("include-content") {
		cfg.IncludeContent = c.Bool("include-content")
	}
	if c.IsSet("use-statute-acronym") {
		cfg.UseStatuteAcronym = c.Bool("use-statute-acronym")
	}
	if c.IsSet("page-delay") {
		cfg.PageDelay = c.Duration("page-delay")
	}
	if c.IsSet("http-timeout") {
		cfg.HTTPTimeout = c.Duration("http-timeout")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("summary") {
		cfg.SummaryFile = c.String("summary")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Run performs one scrape: list statutes, write the statute list, fetch the
// first StatuteLimit statutes and write their provisions. Listing and
// per-statute failures are logged and do not fail the run; only output
// failures are returned.
func Run(ctx context.Context, cfg models.ScrapeConfig, logger *slog.Logger, out io.Writer) error {
	startTime := time.Now()

	var accesses []fetcher.Access
	f := fetcher.NewFetcher(fetcher.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
		Logger:    logger,
		OnAccess:  func(a fetcher.Access) { accesses = append(accesses, a) },
	})
	s := scraper.New(f, scraper.Options{
		SiteURL:           cfg.SiteURL,
		PageDelay:         cfg.PageDelay,
		UseStatuteAcronym: cfg.UseStatuteAcronym,
		Logger:            logger,
		Progress:          out,
	})
	store := &storage.Storage{}

	fmt.Fprintln(out, "Retrieving statutes...")
	listing, listErr := s.ListStatutes(ctx, cfg.ListingURL, cfg.MaxPages)
	if listErr != nil {
		logger.Error("statute listing incomplete", "error", listErr, "statutes", len(listing.Statutes), "pages", listing.Pages)
	}

	if err := store.WriteStatutes(cfg.StatutesFile, listing.Statutes); err != nil {
		return err
	}
	logger.Info("statutes written", "file", cfg.StatutesFile, "count", len(listing.Statutes), "stop_reason", listing.Stop)

	limit := min(cfg.StatuteLimit, len(listing.Statutes))
	results := make([]manifest.StatuteResult, 0, limit)
	var rows []storage.ProvisionRow
	for _, name := range listing.Statutes[:limit] {
		if ctx.Err() != nil {
			logger.Error("scrape interrupted", "error", ctx.Err(), "processed", len(results))
			break
		}

		fmt.Fprintf(out, "\nProcessing: %s\n", name)
		sp, err := s.FetchProvisions(ctx, name)
		results = append(results, manifest.StatuteResult{Provisions: sp, Error: err})
		for _, p := range sp.Provisions {
			rows = append(rows, storage.ProvisionRow{Statute: name, Provision: p})
		}
	}

	if err := store.WriteProvisions(cfg.ProvisionsFile, rows, cfg.IncludeContent); err != nil {
		return err
	}
	logger.Info("provisions written", "file", cfg.ProvisionsFile, "count", len(rows), "statutes", len(results))

	var runID int64
	if cfg.DBPath != "" {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		runID, err = archiveRun(database, cfg.ListingURL, listing, results, accesses)
		if err != nil {
			return err
		}
		logger.Info("run archived", "db", database.Path(), "run_id", runID, "accesses", len(accesses))
	}

	if cfg.SummaryFile != "" {
		summary := manifest.BuildSummary(manifest.RunInfo{
			RunID:         runID,
			ListingURL:    cfg.ListingURL,
			PagesFetched:  listing.Pages,
			StopReason:    string(listing.Stop),
			ListingError:  listErr,
			TotalStatutes: len(listing.Statutes),
			Duration:      time.Since(startTime),
			Files:         []string{cfg.StatutesFile, cfg.ProvisionsFile},
		}, results, store)
		if err := manifest.WriteSummary(cfg.SummaryFile, summary, store); err != nil {
			return err
		}
		logger.Info("summary written", "file", cfg.SummaryFile)
	}

	return nil
}
