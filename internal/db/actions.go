package db

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found")
		return nil
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Created", "Pages", "Stop", "Statutes", "Provisions", "Failed"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.PagesFetched,
			r.StopReason,
			r.StatuteCount,
			r.ProvisionCount,
			r.FailedCount,
		})
	}
	t.Render()

	fmt.Fprintf(out, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(out, "Tip: Use 'sso-scraper db run <id>' to see fetched statutes\n")
	return nil
}

// RunAction shows the detail-page outcome of every fetched statute of a run
func RunAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}
	statutes, err := database.GetRunStatutes(runID)
	if err != nil {
		return err
	}
	total, failed, err := database.CountRunAccesses(runID)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Run %d\n", run.RunID)
	fmt.Fprintf(out, "Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Listing:   %s\n", run.ListingURL)
	fmt.Fprintf(out, "Pages:     %d (stopped: %s)\n", run.PagesFetched, run.StopReason)
	fmt.Fprintf(out, "Statutes:  %d listed\n", run.StatuteCount)
	fmt.Fprintf(out, "Requests:  %d total, %d failed\n\n", total, failed)

	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Statute", "Acronym", "Status", "TOC", "Error"})
	for _, s := range statutes {
		if !s.Fetched {
			continue
		}
		t.AppendRow(table.Row{s.Position + 1, s.Name, s.Acronym, s.StatusCode, s.TOCFound, s.ErrorMessage})
	}
	t.Render()
	return nil
}

func ProvisionsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	provisions, err := database.GetRunProvisions(runID, c.String("statute"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if len(provisions) == 0 {
		fmt.Fprintf(out, "No provisions found for run %d\n", runID)
		return nil
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"Statute", "Number", "Title", "URL"})
	for _, p := range provisions {
		t.AppendRow(table.Row{p.Statute, p.Number, p.Title, p.URL})
	}
	t.Render()

	fmt.Fprintf(out, "\nTotal: %d provisions\n", len(provisions))
	return nil
}

func FindURLAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("URL required\nUsage: sso-scraper db find-url <url>\nExample: sso-scraper db find-url https://sso.agc.gov.sg/Act/AOA2006?WholeDoc=1")
	}

	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	url := c.Args().First()
	urlID, err := database.GetURLID(url)
	if err != nil {
		return fmt.Errorf("URL not found in database: %s\nNote: Only requested URLs are tracked", url)
	}

	out := c.App.Writer
	fmt.Fprintf(out, "[#%d] %s\n", urlID, url)

	last, err := database.GetLastAccess(urlID)
	if err != nil {
		return err
	}
	if last != nil {
		fmt.Fprintf(out, "Last access: %s status=%d success=%t\n",
			last.AccessedAt.Format("2006-01-02 15:04:05"), last.StatusCode, last.Success)
	}
	return nil
}
