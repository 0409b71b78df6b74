// Package http provides an HTTP-based implementation of sitepdf.Fetcher
// for fetching pages that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/fwojciec/sitepdf"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultFetchTimeout bounds each request. Kept consistent with
	// rod.DefaultFetchTimeout.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultUserAgent identifies the crawler to servers.
	DefaultUserAgent = "sitepdf/1.0 (+https://github.com/fwojciec/sitepdf)"

	// maxBodyBytes caps how much of a single page is read.
	maxBodyBytes = 10 << 20
)

// Ensure Fetcher implements sitepdf.Fetcher at compile time.
var _ sitepdf.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests. Cookies
// set by the site are kept for the lifetime of the Fetcher, so pages behind
// a session cookie stay reachable across the crawl.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	cookie    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithCookie sets a raw Cookie header sent with every request, such as a
// session copied from a logged-in browser.
func WithCookie(cookie string) Option {
	return func(f *Fetcher) {
		f.cookie = cookie
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Responses other than
// 200 OK are EUNAVAILABLE errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if f.cookie != "" {
		req.Header.Set("Cookie", f.cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", sitepdf.Errorf(sitepdf.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
