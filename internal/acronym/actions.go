package acronym

import (
	"fmt"
	"io"

	acronympkg "github.com/dtnitsch/sso-scraper/pkg/acronym"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// AcronymAction prints the derived code and detail page link for each
// statute name given as an argument.
func AcronymAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: sso-scraper acronym \"<statute name>\" [...]")
	}
	render(c.App.Writer, c.String("site-url"), c.Args().Slice())
	return nil
}

func render(w io.Writer, siteURL string, names []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Statute", "Acronym", "Detail URL"})
	for _, name := range names {
		code := acronympkg.Derive(name)
		t.AppendRow(table.Row{name, code, acronympkg.DetailURL(siteURL, code)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
