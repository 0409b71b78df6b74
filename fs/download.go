package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/sitepdf"
)

// Ensure Downloader implements sitepdf.Downloader at compile time.
var _ sitepdf.Downloader = (*Downloader)(nil)

// Downloader is the privileged side of the export handoff. It accepts PDF
// download requests and writes them into a single directory.
type Downloader struct {
	dir string
}

// NewDownloader returns a Downloader that saves files into dir, creating it
// when needed.
func NewDownloader(dir string) *Downloader {
	return &Downloader{dir: dir}
}

// Download validates req and writes its payload to dir/filename. The file is
// written to a temporary name and renamed into place, so a failed download
// never leaves a partial PDF. Rejected or failed requests are reported in the
// response; only a cancelled context is returned as an error.
func (d *Downloader) Download(ctx context.Context, req *sitepdf.DownloadRequest) (*sitepdf.DownloadResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := d.save(req)
	if err != nil {
		return &sitepdf.DownloadResponse{OK: false, Error: sitepdf.ErrorMessage(err)}, nil
	}
	return &sitepdf.DownloadResponse{OK: true, Path: path}, nil
}

func (d *Downloader) save(req *sitepdf.DownloadRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	data, err := sitepdf.DecodeDataURL(req.DataURL)
	if err != nil {
		return "", err
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "download is not a PDF document")
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", err
	}

	final := filepath.Join(d.dir, req.Filename)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	if abs, err := filepath.Abs(final); err == nil {
		final = abs
	}
	return final, nil
}
