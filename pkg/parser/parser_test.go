package parser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sso-scraper/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseListing(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a class="non-ajax" href="/Act/OUT1999">Outside Table Act 1999</a>
		<table class="table browse-list">
			<tr><td><a class="non-ajax" href="/Act/AOA2006"> Arms Offences Act 2006 </a></td></tr>
			<tr><td><a class="non-ajax" href="/Act/PC">Penal Code</a></td></tr>
			<tr><td><a class="ajax" href="#">Ajax Link Act 2001</a></td></tr>
			<tr><td><a class="non-ajax" href="/Act/POA1998">Public Order Act 1998</a></td></tr>
			<tr><td><a class="non-ajax" href="/Act/AOA2006">Arms Offences Act 2006</a></td></tr>
		</table>
	</body></html>`)

	page := ParseListing(doc)
	assert.True(t, page.TableFound)
	assert.Equal(t, []string{
		"Arms Offences Act 2006",
		"Public Order Act 1998",
		"Arms Offences Act 2006",
	}, page.Names)
}

func TestParseListing_NoTable(t *testing.T) {
	page := ParseListing(mustDoc(t, `<html><body><table class="other"></table></body></html>`))
	assert.False(t, page.TableFound)
	assert.Empty(t, page.Names)
}

func TestParseListing_EmptyTable(t *testing.T) {
	page := ParseListing(mustDoc(t, `<table class="browse-list"><tr><td>nothing</td></tr></table>`))
	assert.True(t, page.TableFound)
	assert.Empty(t, page.Names)
}

const detailPage = `<html><body>
<div id="tocPanel">
	<a class="nav-link" href="/Act/AOA2006?WholeDoc=1#pr1-"><span>1 Short title</span></a>
	<a class="nav-link" href="#pr2-"><span> 2A  Interpretation of terms </span></a>
	<a class="nav-link" href="#pr3-">no label here</a>
	<a class="nav-link" href="#P1Part1"><span>PART 1 PRELIMINARY</span></a>
	<a class="nav-link"><span>4 Missing href</span></a>
	<a class="nav-link" href="#pr5-"><span>5 Orphan provision</span></a>
	<a class="other" href="#pr6-"><span>6 Not a nav link</span></a>
</div>
<div id="legisContent">
	<div id="pr1-">
		1. This Act is the
		Arms Offences Act 2006.
	</div>
	<div id="pr2-"><p>In this Act, "arm" means a firearm.</p></div>
	<div id="pr2-">duplicate block</div>
</div>
</body></html>`

func TestParseProvisions(t *testing.T) {
	doc := mustDoc(t, detailPage)
	page := ParseProvisions(doc, func(id string) string { return "u#" + id })

	want := []models.Provision{
		{ID: "pr1-", Number: "1", Title: "Short title", URL: "u#pr1-", Content: "1. This Act is the Arms Offences Act 2006.", HasContent: true},
		{ID: "pr2-", Number: "2A", Title: "Interpretation of terms", URL: "u#pr2-", Content: `In this Act, "arm" means a firearm.`, HasContent: true},
		{ID: "", Number: "4", Title: "Missing href", URL: "u#"},
		{ID: "pr5-", Number: "5", Title: "Orphan provision", URL: "u#pr5-"},
	}

	assert.True(t, page.TOCFound)
	if diff := cmp.Diff(want, page.Provisions); diff != "" {
		t.Errorf("ParseProvisions() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, page.Skipped[LinkNoLabel])
	assert.Equal(t, 1, page.Skipped[LinkMalformed])
}

func TestParseProvisions_NoTOC(t *testing.T) {
	page := ParseProvisions(mustDoc(t, `<html><body><div id="legisContent"></div></body></html>`), func(id string) string { return id })
	assert.False(t, page.TOCFound)
	assert.Empty(t, page.Provisions)
}

func TestParseProvisions_NonBreakingSpaceLabel(t *testing.T) {
	doc := mustDoc(t, `<div id="tocPanel">
		<a class="nav-link" href="#pr12A-"><span>12A&nbsp;Offences by bodies corporate</span></a>
		<a class="nav-link" href="#pr13-"><span>&nbsp;13&nbsp;&nbsp;Saving&nbsp;</span></a>
	</div>`)
	page := ParseProvisions(doc, func(id string) string { return id })

	require.Len(t, page.Provisions, 2)
	assert.Equal(t, "12A", page.Provisions[0].Number)
	assert.Equal(t, "Offences by bodies corporate", page.Provisions[0].Title)
	assert.Equal(t, "13", page.Provisions[1].Number)
	assert.Equal(t, "Saving", page.Provisions[1].Title)
	assert.Zero(t, page.Skipped[LinkMalformed])
}

func TestParseProvisions_ContentJoinsBlocksWithSpaces(t *testing.T) {
	doc := mustDoc(t, `<div id="tocPanel"><a class="nav-link" href="#pr7-"><span>7 Penalty</span></a></div>
	<div id="pr7-">
		<p>(1) A person who</p>
		<p>offends</p><span>(2)</span><span>Fine.</span>
	</div>`)
	page := ParseProvisions(doc, func(id string) string { return id })

	require.Len(t, page.Provisions, 1)
	assert.Equal(t, "(1) A person who offends(2)Fine.", page.Provisions[0].Content)
}

func TestFragment(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{href: "/Act/AA2004?WholeDoc=1#pr3-", want: "pr3-"},
		{href: "#pr3-", want: "pr3-"},
		{href: "a#b#c", want: "c"},
		{href: "#", want: ""},
		{href: "", want: ""},
		{href: "/Act/AA2004", want: "/Act/AA2004"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fragment(tt.href), "fragment(%q)", tt.href)
	}
}

func TestLinkOutcome_String(t *testing.T) {
	assert.Equal(t, "parsed", LinkParsed.String())
	assert.Equal(t, "no_label", LinkNoLabel.String())
	assert.Equal(t, "malformed", LinkMalformed.String())
}
