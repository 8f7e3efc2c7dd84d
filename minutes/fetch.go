package minutes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/rs/zerolog"
)

// FetchConfig configures the remote document fetcher.
type FetchConfig struct {
	Timeout      time.Duration // HTTP timeout. Default: 30s.
	MaxBytes     int64         // Response body cap. Default: 512 KiB.
	MaxRedirects int           // Default: 5.
	UserAgent    string

	// GoogleExportBase is the Google Docs export endpoint prefix; the
	// document id and "/export?format=..." are appended. Configuration so
	// tests and alternative providers can substitute it.
	GoogleExportBase string
}

func (c *FetchConfig) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 512 * 1024
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = 5
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; MinutesMill/1.0)"
	}
	if c.GoogleExportBase == "" {
		c.GoogleExportBase = "https://docs.google.com/document/d"
	}
}

// Fetcher retrieves meeting documents from the web.
type Fetcher struct {
	client *http.Client
	cfg    FetchConfig
	md     *converter.Converter
	logger zerolog.Logger
}

// NewFetcher creates a Fetcher with a redirect cap.
func NewFetcher(cfg FetchConfig, logger zerolog.Logger) *Fetcher {
	cfg.defaults()
	maxRedirects := cfg.MaxRedirects
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (%d)", len(via))
				}
				return nil
			},
		},
		cfg: cfg,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		logger: logger,
	}
}

// FetchURL retrieves the document behind a URL as normalized minutes
// markdown. Google Docs URLs go through the provider export endpoints;
// everything else is fetched directly and converted from HTML to markdown.
func (f *Fetcher) FetchURL(ctx context.Context, url string) ExtractionResult {
	if docID, ok := GoogleDocID(url); ok {
		return f.fetchGoogleDoc(ctx, docID)
	}

	body, status, err := f.get(ctx, url)
	if err != nil {
		return failuref("fetch url: %v", err)
	}
	if status < 200 || status >= 400 {
		return failuref("url returned HTTP %d", status)
	}

	md, err := f.md.ConvertString(string(body))
	if err != nil {
		// Not every response is HTML; fall back to the visible-text strip.
		md = htmlToText(string(body))
	}
	md = Normalize(md)
	if md == "" {
		return failure("no text content at url")
	}
	return success(md)
}

// get issues one capped GET. Truncation at the byte cap is deterministic:
// the first MaxBytes bytes are kept.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
