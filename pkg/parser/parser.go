// Package parser extracts statute listings and provisions from Singapore
// Statutes Online HTML pages.
package parser

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sso-scraper/models"
	"github.com/dtnitsch/sso-scraper/pkg/acronym"
)

const (
	listingTableSelector = "table.browse-list"
	listingLinkSelector  = "a.non-ajax"
	tocPanelSelector     = "div#tocPanel"
	tocLinkSelector      = "a.nav-link"
	tocLabelSelector     = "span"
)

// headingPattern splits a TOC label such as "12A Offences by bodies corporate".
// The separator may be a non-breaking space.
var headingPattern = regexp.MustCompile(`^(\d+[A-Z]*)[\s\p{Zs}]+(.+)`)

// ListingPage is what one page of the statute listing yielded.
type ListingPage struct {
	TableFound bool
	Names      []string // year-suffixed names in page order, may repeat
}

// ParseListing collects the statute names from a listing page.
func ParseListing(doc *goquery.Document) ListingPage {
	table := doc.Find(listingTableSelector).First()
	if table.Length() == 0 {
		return ListingPage{}
	}

	page := ListingPage{TableFound: true}
	table.Find(listingLinkSelector).Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if acronym.HasYear(name) {
			page.Names = append(page.Names, name)
		}
	})
	return page
}

// LinkOutcome classifies a single TOC anchor.
type LinkOutcome int

const (
	LinkParsed    LinkOutcome = iota
	LinkNoLabel               // anchor has no label span
	LinkMalformed             // label does not look like "<number> <title>"
)

func (o LinkOutcome) String() string {
	switch o {
	case LinkParsed:
		return "parsed"
	case LinkNoLabel:
		return "no_label"
	case LinkMalformed:
		return "malformed"
	}
	return "unknown"
}

// ProvisionsPage is what a statute detail page yielded.
type ProvisionsPage struct {
	TOCFound   bool
	Provisions []models.Provision
	Skipped    map[LinkOutcome]int
}

// URLBuilder turns a provision id into the link stored on the provision.
type URLBuilder func(provID string) string

// ParseProvisions walks the TOC panel of a statute detail page and returns its
// provisions in page order. Anchors without a label or with an unexpected
// label are skipped and counted.
func ParseProvisions(doc *goquery.Document, buildURL URLBuilder) ProvisionsPage {
	page := ProvisionsPage{Skipped: map[LinkOutcome]int{}}

	toc := doc.Find(tocPanelSelector).First()
	if toc.Length() == 0 {
		return page
	}
	page.TOCFound = true

	var blocks map[string]*goquery.Selection
	toc.Find(tocLinkSelector).Each(func(_ int, link *goquery.Selection) {
		number, title, outcome := parseLabel(link)
		if outcome != LinkParsed {
			page.Skipped[outcome]++
			return
		}

		href, _ := link.Attr("href")
		provID := fragment(href)

		if blocks == nil {
			blocks = indexByID(doc)
		}
		prov := models.Provision{
			ID:     provID,
			Number: number,
			Title:  title,
			URL:    buildURL(provID),
		}
		if block, ok := blocks[provID]; ok {
			prov.Content = normalizeText(block.Text())
			prov.HasContent = true
		}
		page.Provisions = append(page.Provisions, prov)
	})

	return page
}

func parseLabel(link *goquery.Selection) (number, title string, outcome LinkOutcome) {
	label := link.Find(tocLabelSelector).First()
	if label.Length() == 0 {
		return "", "", LinkNoLabel
	}

	m := headingPattern.FindStringSubmatch(strings.TrimSpace(label.Text()))
	if m == nil {
		return "", "", LinkMalformed
	}
	return m[1], m[2], LinkParsed
}

// fragment returns the text after the last '#' of href, or href itself when
// there is none. A missing href yields "".
func fragment(href string) string {
	if i := strings.LastIndex(href, "#"); i >= 0 {
		return href[i+1:]
	}
	return href
}

// indexByID maps every non-empty id to the first element carrying it.
func indexByID(doc *goquery.Document) map[string]*goquery.Selection {
	index := map[string]*goquery.Selection{}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if id == "" {
			return
		}
		if _, seen := index[id]; !seen {
			index[id] = s
		}
	})
	return index
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), len(input)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
