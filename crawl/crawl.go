// Package crawl provides the same-origin crawl and PDF export pipeline.
// It coordinates fetching, content extraction, layout and the download
// handoff for a single site snapshot.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/dom"
)

// maxLinkDepth is the deepest page whose links are followed. Only the start
// page's links are queued, so a crawl covers the start page and the pages it
// links to directly.
const maxLinkDepth = 1

// Crawler performs bounded breadth-first crawls restricted to one origin.
// Pages are fetched one at a time; each fetch completes before the next starts.
type Crawler struct {
	Fetcher     sitepdf.Fetcher
	Parser      sitepdf.Parser
	RateLimiter sitepdf.DomainLimiter
	Logger      *slog.Logger

	// Origin, when set, is the site the crawl must start on. A start URL on
	// any other origin is rejected before any request is made.
	Origin string

	// StartHTML, when set, is the already-loaded markup of the start page,
	// which is then used instead of fetching it.
	StartHTML string
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCrawled
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// session holds the state of one crawl run.
type session struct {
	normalizer *Normalizer
	frontier   *Frontier
	startHref  string
	limit      int
	records    []*sitepdf.PageRecord
}

// Crawl visits startURL and the same-origin pages it links to, in discovery
// order, and returns one record per page successfully fetched. At most
// PageLimit(maxPages) records are returned.
//
// A page that fails to fetch or parse is logged and skipped. Crawl returns an
// EINVALID error for a bad start URL and an EEMPTY error if no page could be
// retrieved. The progress callback, if provided, receives events as pages
// are processed.
func (c *Crawler) Crawl(ctx context.Context, startURL string, maxPages int, progress ProgressFunc) ([]*sitepdf.PageRecord, error) {
	s, err := c.newSession(startURL, maxPages)
	if err != nil {
		return nil, err
	}
	logger := c.logger()
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	notify(ProgressEvent{Type: ProgressStarted, Total: s.limit, URL: s.startHref})

	for len(s.records) < s.limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target, ok := s.frontier.Pop()
		if !ok {
			break
		}
		if !s.frontier.Visit(target.URL) {
			continue
		}

		root, err := c.load(ctx, target.URL, target.URL == s.startHref)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("crawl page failed", "url", target.URL, "err", err)
			notify(ProgressEvent{
				Type:      ProgressFailed,
				Completed: len(s.records),
				Total:     s.limit,
				URL:       target.URL,
				Error:     err,
			})
			continue
		}

		extracted := dom.Extract(root, target.URL)
		s.records = append(s.records, &sitepdf.PageRecord{
			URL:   target.URL,
			Title: extracted.Title,
			Text:  extracted.Text,
		})
		logger.Debug("crawled page", "url", target.URL, "depth", target.Depth, "count", len(s.records))
		notify(ProgressEvent{
			Type:      ProgressCrawled,
			Completed: len(s.records),
			Total:     s.limit,
			URL:       target.URL,
		})

		if len(s.records) >= s.limit {
			break
		}

		if target.Depth < maxLinkDepth {
			s.enqueueLinks(root, target)
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: len(s.records), Total: s.limit})

	if len(s.records) == 0 {
		return nil, sitepdf.Errorf(sitepdf.EEMPTY, "no pages were successfully crawled")
	}
	return s.records, nil
}

// newSession validates the start URL and seeds the frontier with it.
func (c *Crawler) newSession(startURL string, maxPages int) (*session, error) {
	if strings.TrimSpace(startURL) == "" {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "start URL required")
	}

	origin, err := Origin(startURL)
	if err != nil {
		return nil, err
	}
	if c.Origin != "" {
		current, err := Origin(c.Origin)
		if err != nil {
			return nil, err
		}
		if current != origin {
			return nil, sitepdf.Errorf(sitepdf.EINVALID, "start URL must be on the current site (%s)", current)
		}
	}

	normalizer := NewNormalizer(origin)
	startHref, ok := normalizer.Normalize(startURL, startURL)
	if !ok {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "unable to determine a valid starting URL for the crawl")
	}

	frontier := NewFrontier()
	frontier.Push(sitepdf.CrawlTarget{URL: startHref, Depth: 0})

	return &session{
		normalizer: normalizer,
		frontier:   frontier,
		startHref:  startHref,
		limit:      PageLimit(float64(maxPages)),
	}, nil
}

// enqueueLinks queues the same-origin links of a crawled page one hop deeper.
// Links back to the start page and URLs already seen are dropped.
func (s *session) enqueueLinks(root sitepdf.Node, from sitepdf.CrawlTarget) {
	for _, href := range dom.Links(root) {
		normalized, ok := s.normalizer.Normalize(href, from.URL)
		if !ok || normalized == s.startHref {
			continue
		}
		s.frontier.Push(sitepdf.CrawlTarget{URL: normalized, Depth: from.Depth + 1})
	}
}

// load returns the parsed document for pageURL.
func (c *Crawler) load(ctx context.Context, pageURL string, isStart bool) (sitepdf.Node, error) {
	markup := c.StartHTML
	if !isStart || markup == "" {
		if c.RateLimiter != nil {
			u, err := url.Parse(pageURL)
			if err != nil {
				return nil, err
			}
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}

		var err error
		markup, err = c.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
	}

	root, err := c.Parser.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return root, nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
