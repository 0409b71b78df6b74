package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/layout"
)

// defaultDownloadError is reported when the host rejects a download without
// saying why.
const defaultDownloadError = "failed to initiate PDF download"

// Exporter crawls a site, lays the pages out into a PDF and hands the result
// to a Downloader. It never writes the file itself.
type Exporter struct {
	Crawler    *Crawler
	NewPDF     func() (sitepdf.PDF, error)
	Downloader sitepdf.Downloader

	// Exports, when set, records every successful export.
	Exports sitepdf.ExportService

	// Pages, when set, receives the text of every crawled page. The pages
	// are committed only if the download succeeds.
	Pages sitepdf.PageStore

	Logger *slog.Logger
	Now    func() time.Time
}

// ExportResult describes a PDF that was handed off for saving.
type ExportResult struct {
	Filename string
	Path     string
	Pages    int
	Records  []*sitepdf.PageRecord
	Bytes    int
}

// Export crawls startURL, renders the crawled pages and requests exactly one
// download of the resulting PDF. Crawl errors are returned unchanged; a failed
// handoff is reported as EEXPORT.
func (e *Exporter) Export(ctx context.Context, startURL string, maxPages int, progress ProgressFunc) (*ExportResult, error) {
	records, err := e.Crawler.Crawl(ctx, startURL, maxPages, progress)
	if err != nil {
		return nil, err
	}

	if err := e.savePages(ctx, records); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if e.Pages != nil && !committed {
			if err := e.Pages.Abort(); err != nil {
				e.logger().Warn("discard page text failed", "err", err)
			}
		}
	}()

	data, pages, err := e.render(records)
	if err != nil {
		return nil, err
	}

	filename := Filename(startURL, e.now())
	resp, err := e.Downloader.Download(ctx, &sitepdf.DownloadRequest{
		Action:   sitepdf.ActionDownloadPDF,
		Filename: filename,
		DataURL:  sitepdf.EncodePDFDataURL(data),
	})
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EEXPORT, "%s: %v", defaultDownloadError, err)
	}
	if resp == nil || !resp.OK {
		msg := defaultDownloadError
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		return nil, sitepdf.Errorf(sitepdf.EEXPORT, "%s", msg)
	}

	if e.Pages != nil {
		committed = true
		if err := e.Pages.Commit(); err != nil {
			e.logger().Warn("save page text failed", "err", err)
		}
	}

	result := &ExportResult{
		Filename: filename,
		Path:     resp.Path,
		Pages:    pages,
		Records:  records,
		Bytes:    len(data),
	}
	e.record(ctx, startURL, result, data)
	return result, nil
}

// savePages stages the text of every record in the page store.
func (e *Exporter) savePages(ctx context.Context, records []*sitepdf.PageRecord) error {
	if e.Pages == nil {
		return nil
	}
	for _, r := range records {
		if err := e.Pages.Save(ctx, r); err != nil {
			if abortErr := e.Pages.Abort(); abortErr != nil {
				e.logger().Warn("discard page text failed", "err", abortErr)
			}
			return fmt.Errorf("save page text for %s: %w", r.URL, err)
		}
	}
	return nil
}

// render lays records out into a new PDF and serializes it.
func (e *Exporter) render(records []*sitepdf.PageRecord) ([]byte, int, error) {
	doc, err := e.NewPDF()
	if err != nil {
		return nil, 0, fmt.Errorf("create pdf: %w", err)
	}
	font, err := doc.EmbedFont()
	if err != nil {
		return nil, 0, fmt.Errorf("embed font: %w", err)
	}

	pages := layout.NewPaginator(doc, font).Render(records)

	data, err := doc.Serialize()
	if err != nil {
		return nil, 0, fmt.Errorf("serialize pdf: %w", err)
	}
	return data, pages, nil
}

// record stores the export in the history under the canonical start URL.
// The file is already saved, so a failure is only logged.
func (e *Exporter) record(ctx context.Context, startURL string, result *ExportResult, data []byte) {
	if e.Exports == nil {
		return
	}

	if canonical, err := CanonicalURL(startURL); err == nil {
		startURL = canonical
	}

	export := &sitepdf.Export{
		StartURL:    startURL,
		Filename:    result.Filename,
		Path:        result.Path,
		Bytes:       result.Bytes,
		ContentHash: ContentHash(data),
	}
	for i, r := range result.Records {
		export.Pages = append(export.Pages, &sitepdf.ExportPage{
			URL:      r.URL,
			Title:    r.Title,
			Position: i,
		})
	}

	if err := e.Exports.CreateExport(ctx, export); err != nil {
		e.logger().Warn("record export failed", "filename", result.Filename, "err", err)
	}
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Filename returns the download name for a crawl of startURL at t, such as
// "example.com-crawl-2026-10-19T12-00-00-000Z.pdf". Hosts that cannot be
// determined fall back to "site".
func Filename(startURL string, t time.Time) string {
	host := "site"
	if u, err := url.Parse(startURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return host + "-crawl-" + stamp + ".pdf"
}
