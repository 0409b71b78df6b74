package mock

import (
	"context"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of sitepdf.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, req *sitepdf.DownloadRequest) (*sitepdf.DownloadResponse, error)
}

func (d *Downloader) Download(ctx context.Context, req *sitepdf.DownloadRequest) (*sitepdf.DownloadResponse, error) {
	return d.DownloadFn(ctx, req)
}
