package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/sso-scraper/pkg/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingHTML(names ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table class="table browse-list">`)
	for _, n := range names {
		fmt.Fprintf(&b, `<tr><td><a class="non-ajax" href="/Act/x">%s</a></td></tr>`, n)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

// pagesServer serves pages[i] at /Browse for i == 0 and /Browse/i after that.
func pagesServer(t *testing.T, pages []string) (*httptest.Server, *[]string) {
	t.Helper()
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		idx := 0
		if rest := strings.TrimPrefix(r.URL.Path, "/Browse"); rest != "" {
			if _, err := fmt.Sscanf(rest, "/%d", &idx); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if idx >= len(pages) {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(pages[idx]))
	}))
	t.Cleanup(srv.Close)
	return srv, &requested
}

type sleepRecorder struct {
	calls []time.Duration
	err   error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return s.err
}

func newTestScraper(f Fetcher, siteURL string, sleeper *sleepRecorder, progress *bytes.Buffer) *Scraper {
	opts := Options{SiteURL: siteURL, PageDelay: time.Second}
	if sleeper != nil {
		opts.Sleep = sleeper.sleep
	}
	if progress != nil {
		opts.Progress = progress
	}
	return New(f, opts)
}

func TestPageURL(t *testing.T) {
	base := "https://sso.agc.gov.sg/Browse/Act/Current/All?PageSize=500&SortBy=Title&SortOrder=ASC"
	assert.Equal(t, base, PageURL(base, 0))
	assert.Equal(t, base+"/1", PageURL(base, 1))
	assert.Equal(t, "http://x/Browse/12", PageURL("http://x/Browse", 12))
}

func TestListStatutes_StopsWhenNoNewStatutes(t *testing.T) {
	names := []string{"Arms Offences Act 2006", "Public Order Act 2009", "Penal Code 1871"}
	srv, requested := pagesServer(t, []string{listingHTML(names...), listingHTML(names...), listingHTML("Never Reached Act 2000")})

	sleeper := &sleepRecorder{}
	var progress bytes.Buffer
	s := newTestScraper(fetcher.NewFetcher(fetcher.Options{}), srv.URL, sleeper, &progress)

	res, err := s.ListStatutes(context.Background(), srv.URL+"/Browse", 10)
	require.NoError(t, err)

	assert.Equal(t, names, res.Statutes)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, StopNoNew, res.Stop)
	assert.Equal(t, []string{"/Browse", "/Browse/1"}, *requested)
	assert.Equal(t, []time.Duration{time.Second}, sleeper.calls)
	assert.Contains(t, progress.String(), "Fetching page 2: "+srv.URL+"/Browse/1")
	assert.Contains(t, progress.String(), "No new statutes found")
}

func TestListStatutes_DedupPreservesFirstSeenOrder(t *testing.T) {
	srv, _ := pagesServer(t, []string{
		listingHTML("B Act 2001", "A Act 2002", "B Act 2001", "No Year Act"),
		listingHTML("A Act 2002", "C Act 2003", "B Act 2001", "D Act 2004"),
	})

	s := newTestScraper(fetcher.NewFetcher(fetcher.Options{}), srv.URL, &sleepRecorder{}, nil)
	res, err := s.ListStatutes(context.Background(), srv.URL+"/Browse", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"B Act 2001", "A Act 2002", "C Act 2003", "D Act 2004"}, res.Statutes)
	// page 2 is the 404 page without a table
	assert.Equal(t, StopNoTable, res.Stop)
	assert.Equal(t, 3, res.Pages)
}

func TestListStatutes_MaxPages(t *testing.T) {
	srv, requested := pagesServer(t, []string{
		listingHTML("A Act 2001"),
		listingHTML("B Act 2002"),
		listingHTML("C Act 2003"),
	})

	sleeper := &sleepRecorder{}
	s := newTestScraper(fetcher.NewFetcher(fetcher.Options{}), srv.URL, sleeper, nil)
	res, err := s.ListStatutes(context.Background(), srv.URL+"/Browse", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"A Act 2001", "B Act 2002"}, res.Statutes)
	assert.Equal(t, StopMaxPages, res.Stop)
	assert.Len(t, *requested, 2)
	assert.Len(t, sleeper.calls, 2)
}

func TestListStatutes_NoTableOnFirstPage(t *testing.T) {
	srv, _ := pagesServer(t, []string{`<html><body>maintenance</body></html>`})

	s := newTestScraper(fetcher.NewFetcher(fetcher.Options{}), srv.URL, &sleepRecorder{}, nil)
	res, err := s.ListStatutes(context.Background(), srv.URL+"/Browse", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Statutes)
	assert.Equal(t, StopNoTable, res.Stop)
	assert.Equal(t, 1, res.Pages)
}

// stubFetcher answers from a map of URL to HTML and fails for URLs in errs.
type stubFetcher struct {
	pages    map[string]string
	statuses map[string]int
	errs     map[string]error
}

func (f stubFetcher) Document(_ context.Context, url string) (*goquery.Document, int, error) {
	if err, ok := f.errs[url]; ok {
		return nil, 0, err
	}
	html, ok := f.pages[url]
	status := http.StatusOK
	if s, set := f.statuses[url]; set {
		status = s
	} else if !ok {
		status = http.StatusNotFound
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	return doc, status, err
}

func TestListStatutes_ErrorKeepsPartialResults(t *testing.T) {
	boom := errors.New("connection reset by peer")
	f := stubFetcher{
		pages: map[string]string{"base": listingHTML("A Act 2001", "B Act 2002")},
		errs:  map[string]error{"base/1": boom},
	}

	var progress bytes.Buffer
	s := newTestScraper(f, "", &sleepRecorder{}, &progress)
	res, err := s.ListStatutes(context.Background(), "base", 10)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"A Act 2001", "B Act 2002"}, res.Statutes)
	assert.Equal(t, StopError, res.Stop)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, progress.String(), "Error: connection reset by peer")
}

func TestListStatutes_CanceledDuringDelay(t *testing.T) {
	f := stubFetcher{pages: map[string]string{"base": listingHTML("A Act 2001")}}
	sleeper := &sleepRecorder{err: context.Canceled}

	s := newTestScraper(f, "", sleeper, nil)
	res, err := s.ListStatutes(context.Background(), "base", 10)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"A Act 2001"}, res.Statutes)
	assert.Equal(t, StopCanceled, res.Stop)
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}

const detailHTML = `<html><body>
<div id="tocPanel">
	<a class="nav-link" href="/Act/AOA2006?WholeDoc=1#pr1-"><span>1 Short title</span></a>
	<a class="nav-link" href="#pr2-"><span>2 Interpretation</span></a>
	<a class="nav-link" href="#P11-"><span>PART 1</span></a>
	<a class="nav-link" href="#pr3-"></a>
</div>
<div id="pr1-">This Act is the Arms Offences Act 2006.</div>
</body></html>`

func detailServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.RequestURI())
		switch r.URL.Path {
		case "/Act/AOA2006":
			_, _ = w.Write([]byte(detailHTML))
		case "/Act/EA2020":
			_, _ = w.Write([]byte(`<html><body><p>no toc</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &requested
}

func TestFetchProvisions(t *testing.T) {
	srv, requested := detailServer(t)
	s := newTestScraper(fetcher.NewFetcher(fetcher.Options{}), srv.URL, nil, nil)

	res, err := s.FetchProvisions(context.Background(), "Arms Offences Act 2006")
	require.NoError(t, err)

	assert.Equal(t, []string{"/Act/AOA2006?WholeDoc=1"}, *requested)
	assert.Equal(t, "AOA2006", res.Acronym)
	assert.Equal(t, srv.URL+"/Act/AOA2006?WholeDoc=1", res.DetailURL)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.TOCFound)
	assert.Equal(t, map[string]int{"malformed": 1, "no_label": 1}, res.Skipped)

	require.Len(t, res.Provisions, 2)
	first := res.Provisions[0]
	assert.Equal(t, "1", first.Number)
	assert.Equal(t, "Short title", first.Title)
	assert.Equal(t, srv.URL+"/Act/AA2004?WholeDoc=1&ProvIds=pr1-#pr1-", first.URL)
	assert.Equal(t, "This Act is the Arms Offences Act 2006.", first.Content)

	second := res.Provisions[1]
	assert.Equal(t, "2", second.Number)
	assert.Equal(t, srv.URL+"/Act/AA2004?WholeDoc=1&ProvIds=pr2-#pr2-", second.URL)
	assert.Empty(t, second.Content)
	assert.False(t, second.HasContent)
}

func TestFetchProvisions_UseStatuteAcronym(t *testing.T) {
	srv, _ := detailServer(t)
	s := New(fetcher.NewFetcher(fetcher.Options{}), Options{SiteURL: srv.URL, UseStatuteAcronym: true})

	res, err := s.FetchProvisions(context.Background(), "Arms Offences Act 2006")
	require.NoError(t, err)
	require.NotEmpty(t, res.Provisions)
	assert.Equal(t, srv.URL+"/Act/AOA2006?WholeDoc=1&ProvIds=pr1-#pr1-", res.Provisions[0].URL)
}

func TestFetchProvisions_NotFound(t *testing.T) {
	srv, _ := detailServer(t)
	s := newTestScraper(fetcher.NewFetcher(fetcher.Options{}), srv.URL, nil, nil)

	res, err := s.FetchProvisions(context.Background(), "Unknown Statute Act 1900")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.False(t, res.TOCFound)
	assert.Empty(t, res.Provisions)
}

func TestFetchProvisions_NoTOC(t *testing.T) {
	srv, _ := detailServer(t)
	s := newTestScraper(fetcher.NewFetcher(fetcher.Options{}), srv.URL, nil, nil)

	res, err := s.FetchProvisions(context.Background(), "Election Act 2020")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, res.TOCFound)
	assert.Empty(t, res.Provisions)
}

func TestFetchProvisions_TransportError(t *testing.T) {
	boom := errors.New("dial tcp: i/o timeout")
	f := stubFetcher{errs: map[string]error{"https://sso.agc.gov.sg/Act/AOA2006?WholeDoc=1": boom}}

	s := New(f, Options{})
	res, err := s.FetchProvisions(context.Background(), "Arms Offences Act 2006")
	require.ErrorIs(t, err, boom)
	assert.Empty(t, res.Provisions)
	assert.Equal(t, "Arms Offences Act 2006", res.Statute)
}
