package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	acronymcmd "github.com/dtnitsch/sso-scraper/internal/acronym"
	dbcmd "github.com/dtnitsch/sso-scraper/internal/db"
	"github.com/dtnitsch/sso-scraper/internal/scrape"
	"github.com/dtnitsch/sso-scraper/models"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "sso-scraper",
		Usage:  "Collect Acts and their provisions from Singapore Statutes Online",
		Flags:  scrape.Flags(),
		Action: scrape.ScrapeAction,
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "List statutes, fetch provisions of the first statutes and write CSV files",
				Flags:  scrape.Flags(),
				Action: scrape.ScrapeAction,
			},
			{
				Name:      "acronym",
				Usage:     "Print the code and detail page link derived from statute names",
				ArgsUsage: "<statute name> [...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "site-url",
						Value: models.DefaultSiteURL,
					},
				},
				Action: acronymcmd.AcronymAction,
			},
			{
				Name:  "db",
				Usage: "Browse runs archived with --db",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "List archived runs, most recent first",
						Flags: []cli.Flag{
							dbcmd.DBFlag(),
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "maximum runs to show, 0 for all",
							},
						},
						Action: dbcmd.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "Show the fetched statutes of a run (latest when omitted)",
						ArgsUsage: "[run-id]",
						Flags:     []cli.Flag{dbcmd.DBFlag()},
						Action:    dbcmd.RunAction,
					},
					{
						Name:      "provisions",
						Usage:     "List the provisions archived for a run (latest when omitted)",
						ArgsUsage: "[run-id]",
						Flags: []cli.Flag{
							dbcmd.DBFlag(),
							&cli.StringFlag{
								Name:  "statute",
								Usage: "only provisions of this statute name",
							},
						},
						Action: dbcmd.ProvisionsAction,
					},
					{
						Name:      "find-url",
						Usage:     "Look up a requested URL and its last access",
						ArgsUsage: "<url>",
						Flags:     []cli.Flag{dbcmd.DBFlag()},
						Action:    dbcmd.FindURLAction,
					},
				},
			},
		},
	}
}
