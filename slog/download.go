package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Ensure LoggingDownloader implements sitepdf.Downloader.
var _ sitepdf.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader and logs every handoff.
type LoggingDownloader struct {
	next   sitepdf.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next sitepdf.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download logs the request and the host's answer.
func (d *LoggingDownloader) Download(ctx context.Context, req *sitepdf.DownloadRequest) (resp *sitepdf.DownloadResponse, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"action", req.Action,
			"filename", req.Filename,
			"bytes", len(req.DataURL),
			"duration", time.Since(begin),
		}
		if resp != nil {
			attrs = append(attrs, "ok", resp.OK, "path", resp.Path)
			if resp.Error != "" {
				attrs = append(attrs, "error", resp.Error)
			}
		}
		attrs = append(attrs, "err", err)
		d.logger.Info("download", attrs...)
	}(time.Now())
	return d.next.Download(ctx, req)
}
