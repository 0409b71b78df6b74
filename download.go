package sitepdf

import (
	"context"
	"encoding/base64"
	"strings"
)

// ActionDownloadPDF is the only action accepted by a Downloader.
const ActionDownloadPDF = "download_pdf"

// pdfDataURLPrefix prefixes a base64-encoded PDF data URL.
const pdfDataURLPrefix = "data:application/pdf;base64,"

// DownloadRequest asks the privileged host to save a file.
type DownloadRequest struct {
	Action   string `json:"action"`
	Filename string `json:"filename"`
	DataURL  string `json:"dataUrl"`
}

// Validate returns an error if the request cannot be honoured.
func (r *DownloadRequest) Validate() error {
	if r.Action != ActionDownloadPDF {
		return Errorf(EINVALID, "unsupported action %q", r.Action)
	}
	if r.Filename == "" {
		return Errorf(EINVALID, "download filename required")
	}
	if strings.ContainsAny(r.Filename, `/\`) || r.Filename == "." || r.Filename == ".." {
		return Errorf(EINVALID, "invalid download filename %q", r.Filename)
	}
	if r.DataURL == "" {
		return Errorf(EINVALID, "download data required")
	}
	return nil
}

// DownloadResponse reports the outcome of a DownloadRequest.
type DownloadResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	// Path is where the file was written, when the host reports it.
	Path string `json:"path,omitempty"`
}

// Downloader saves files on behalf of the crawl pipeline, which never writes
// the artifact itself. A failed save is reported as OK == false; a returned
// error means the request never reached the host.
type Downloader interface {
	Download(ctx context.Context, req *DownloadRequest) (*DownloadResponse, error)
}

// EncodePDFDataURL encodes a serialized PDF as a base64 data URL.
func EncodePDFDataURL(data []byte) string {
	return pdfDataURLPrefix + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL decodes a base64 data URL and returns its payload.
func DecodeDataURL(dataURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, Errorf(EINVALID, "not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, Errorf(EINVALID, "data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid data URL payload: %v", err)
	}
	return data, nil
}
