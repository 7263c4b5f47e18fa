package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the faculty website the listings are scraped from
var DefaultBaseURL = "https://www.fit.vut.cz"

// retryDelay is the backoff unit between attempts
var retryDelay = time.Second

// Options selects which listings the client scrapes
type Options struct {
	BaseURL     string
	Year        int    // academic year the course listing is for, e.g. 2022
	StudyType   string // "NMgr" for the master's listing
	ProgramID   int    // study program whose specializations are listed
	Concurrency int    // detail pages fetched in parallel
}

// DefaultOptions returns the master's program of the 2022 listing
func DefaultOptions() Options {
	return Options{
		BaseURL:     DefaultBaseURL,
		Year:        2022,
		StudyType:   "NMgr",
		ProgramID:   7887,
		Concurrency: 4,
	}
}

// Client handles HTTP requests to the faculty website
type Client struct {
	httpClient *http.Client
	base       *url.URL
	opts       Options
	logger     *zap.Logger
}

// NewClient creates a new scraper client
func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		base:   base,
		opts:   opts,
		logger: logger,
	}, nil
}

// resolve turns a link found on a page into an absolute URL
func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return c.base.ResolveReference(u).String(), nil
}

// Get fetches the given page, retrying up to 3 times on transport errors
// and 502/503/504 responses.
func (c *Client) Get(ctx context.Context, ref string) (*http.Response, error) {
	reqURL, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "fitctl/1.0")

		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout:
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, reqURL)
		default:
			return resp, nil
		}

		if attempt == 2 {
			break
		}
		c.logger.Debug("retrying request", zap.String("url", reqURL), zap.Int("attempt", attempt+1), zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to fetch %s after 3 attempts: %w", reqURL, lastErr)
}
