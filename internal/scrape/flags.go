package scrape

import (
	"github.com/dtnitsch/sso-scraper/models"
	"github.com/urfave/cli/v2"
)

// Flags returns the flags of the scrape command. Defaults shown in help are
// the built-in ones; a value only overrides the config file when it is set.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file",
		},
		&cli.StringFlag{
			Name:  "listing-url",
			Value: models.DefaultListingURL,
			Usage: "first page of the statute listing",
		},
		&cli.StringFlag{
			Name:  "site-url",
			Value: models.DefaultSiteURL,
			Usage: "site root used to build statute and provision links",
		},
		&cli.StringFlag{
			Name:  "user-agent",
			Value: models.DefaultUserAgent,
			Usage: "User-Agent header sent with every request",
		},
		&cli.IntFlag{
			Name:  "max-pages",
			Value: models.DefaultMaxPages,
			Usage: "maximum number of listing pages to request",
		},
		&cli.IntFlag{
			Name:  "limit",
			Value: models.DefaultStatuteLimit,
			Usage: "number of statutes whose provisions are fetched",
		},
		&cli.StringFlag{
			Name:  "statutes-out",
			Value: models.DefaultStatutesFile,
			Usage: "statute list CSV",
		},
		&cli.StringFlag{
			Name:  "provisions-out",
			Value: models.DefaultProvisionsFile,
			Usage: "provisions CSV",
		},
		&cli.BoolFlag{
			Name:  "include-content",
			Usage: "add a Content column to the provisions CSV",
		},
		&cli.BoolFlag{
			Name:  "use-statute-acronym",
			Usage: "build provision links with the statute's own code instead of AA2004",
		},
		&cli.DurationFlag{
			Name:  "page-delay",
			Value: models.DefaultPageDelay,
			Usage: "wait between listing pages",
		},
		&cli.DurationFlag{
			Name:  "http-timeout",
			Usage: "per-request timeout, 0 for none",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "archive the run into this SQLite database",
		},
		&cli.StringFlag{
			Name:  "summary",
			Usage: "write a YAML run summary to this file",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
	}
}
