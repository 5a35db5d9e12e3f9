package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Access describes a single request made by the Fetcher.
type Access struct {
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
	At         time.Time
}

type Options struct {
	UserAgent string
	Timeout   time.Duration // 0 leaves the client without a timeout
	Logger    *slog.Logger

	// OnAccess, when set, is called after every request.
	OnAccess func(Access)
}

type Fetcher struct {
	client   *resty.Client
	onAccess func(Access)
}

func NewFetcher(opts Options) *Fetcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New()
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("http response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"bytes", len(resp.Body()),
			"duration", resp.Time(),
		)
		return nil
	})

	return &Fetcher{client: client, onAccess: opts.OnAccess}
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// Document fetches url and parses the body whatever the response status.
// Only transport and parse failures are returned as errors; callers decide
// what a non-2xx status means for them.
func (f *Fetcher) Document(ctx context.Context, url string) (*goquery.Document, int, error) {
	body, status, err := f.get(ctx, url)
	if err != nil {
		return nil, status, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, status, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, status, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)

	access := Access{URL: url, At: time.Now()}
	if resp != nil && resp.RawResponse != nil {
		access.StatusCode = resp.StatusCode()
	}
	if err != nil {
		access.Err = err
		f.record(access)
		return nil, access.StatusCode, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	f.record(access)

	return resp.Body(), resp.StatusCode(), nil
}

func (f *Fetcher) record(a Access) {
	if f.onAccess != nil {
		f.onAccess(a)
	}
}
