package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/fpdf"
	"github.com/fwojciec/sitepdf/fs"
	"github.com/fwojciec/sitepdf/goquery"
	sitepdfhttp "github.com/fwojciec/sitepdf/http"
	"github.com/fwojciec/sitepdf/rod"
	sitepdfslog "github.com/fwojciec/sitepdf/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if deps.Exporter == nil {
		err := sitepdf.Errorf(sitepdf.EINTERNAL, "crawl is not configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	progress, stop := newProgress(deps.Stderr)
	result, err := deps.Exporter.Export(deps.Ctx, c.URL, crawl.ParsePageLimit(c.MaxPages), progress)
	stop()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages to %s (%s, %d PDF pages)\n",
		len(result.Records), result.Path, crawl.FormatBytes(result.Bytes), result.Pages)
	return nil
}

// newExporter wires the crawl pipeline for c. The returned closer releases
// the fetchers and must be called once the export is done.
func newExporter(ctx context.Context, c *CrawlCmd, verbose bool, deps *Dependencies) (*crawl.Exporter, closers, error) {
	var release closers

	var parser sitepdf.Parser = goquery.NewParser()
	if verbose {
		parser = sitepdfslog.NewLoggingParser(parser, deps.Logger)
	}

	httpOpts := []sitepdfhttp.Option{sitepdfhttp.WithTimeout(c.Timeout)}
	if c.UserAgent != "" {
		httpOpts = append(httpOpts, sitepdfhttp.WithUserAgent(c.UserAgent))
	}
	if c.Cookie != "" {
		httpOpts = append(httpOpts, sitepdfhttp.WithCookie(c.Cookie))
	}
	httpFetcher := sitepdfhttp.NewFetcher(httpOpts...)
	release = append(release, httpFetcher.Close)

	var fetcher sitepdf.Fetcher = httpFetcher
	if c.Render != "never" {
		rodOpts := []rod.Option{rod.WithFetchTimeout(c.Timeout)}
		if c.UserAgent != "" {
			rodOpts = append(rodOpts, rod.WithUserAgent(c.UserAgent))
		}
		rodFetcher, err := rod.NewFetcher(rodOpts...)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or use --render=never")
			return nil, nil, release.closeWith(fmt.Errorf("failed to start browser: %w", err))
		}
		release = append(release, rodFetcher.Close)

		switch c.Render {
		case "always":
			fetcher = rodFetcher
		case "auto":
			fetcher = crawl.ChooseFetcher(ctx, c.URL, httpFetcher, rodFetcher, parser)
			if fetcher == rodFetcher {
				deps.Logger.Info("using headless browser", "url", c.URL)
			}
		}
	}
	if verbose {
		fetcher = sitepdfslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	var startHTML string
	if c.StartHTML != "" {
		data, err := os.ReadFile(c.StartHTML)
		if err != nil {
			return nil, nil, release.closeWith(fmt.Errorf("read start page: %w", err))
		}
		startHTML = string(data)
	}

	var downloader sitepdf.Downloader = fs.NewDownloader(c.Out)
	if verbose {
		downloader = sitepdfslog.NewLoggingDownloader(downloader, deps.Logger)
	}

	name := "site"
	if u, err := url.Parse(c.URL); err == nil && u.Hostname() != "" {
		name = u.Hostname()
	}

	exporter := &crawl.Exporter{
		Crawler: &crawl.Crawler{
			Fetcher:     fetcher,
			Parser:      parser,
			RateLimiter: crawl.NewDomainLimiter(c.Rate),
			Logger:      deps.Logger,
			Origin:      c.Origin,
			StartHTML:   startHTML,
		},
		NewPDF: func() (sitepdf.PDF, error) {
			return fpdf.NewDocument(fpdf.WithTitle(c.URL), fpdf.WithCreationDate(time.Now())), nil
		},
		Downloader: downloader,
		Exports:    deps.Exports,
		Logger:     deps.Logger,
	}
	if c.TextDir != "" {
		exporter.Pages = fs.NewFileStore(c.TextDir, name)
	}
	return exporter, release, nil
}

// closeWith releases everything acquired so far and returns err.
func (c closers) closeWith(err error) error {
	_ = c.Close()
	return err
}

// newProgress returns a progress callback that shows a spinner on w when w is
// a terminal, and a function that stops it.
func newProgress(w io.Writer) (crawl.ProgressFunc, func()) {
	f, ok := w.(*os.File)
	if !ok {
		return nil, func() {}
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(f))
	setSuffix := func(suffix string) {
		s.Lock()
		s.Suffix = suffix
		s.Unlock()
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			setSuffix(" Crawling " + crawl.TruncateURL(event.URL, 60))
			s.Start()
		case crawl.ProgressCrawled:
			setSuffix(fmt.Sprintf(" [%d/%d] %s", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60)))
		case crawl.ProgressFinished:
			s.Stop()
		}
	}
	return progress, s.Stop
}
