package sitepdf

import (
	"context"
	"time"
)

// Export records one PDF produced by a completed crawl.
type Export struct {
	ID          string        `json:"id"`
	StartURL    string        `json:"startUrl"`
	Filename    string        `json:"filename"`
	Path        string        `json:"path"`
	Bytes       int           `json:"bytes"`
	ContentHash string        `json:"contentHash"`
	Pages       []*ExportPage `json:"pages"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ExportPage is a crawled page included in an export, in crawl order.
type ExportPage struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// Validate returns an error if the export contains invalid fields.
func (e *Export) Validate() error {
	if e.StartURL == "" {
		return Errorf(EINVALID, "export start URL required")
	}
	if e.Filename == "" {
		return Errorf(EINVALID, "export filename required")
	}
	return nil
}

// ExportService represents a service for managing the export history.
type ExportService interface {
	// CreateExport records a new export together with its pages.
	CreateExport(ctx context.Context, export *Export) error

	// FindExportByID retrieves an export and its pages by ID.
	// Returns ENOTFOUND if export does not exist.
	FindExportByID(ctx context.Context, id string) (*Export, error)

	// FindExports retrieves exports matching the filter, newest first.
	// Pages are not loaded.
	FindExports(ctx context.Context, filter ExportFilter) ([]*Export, error)

	// DeleteExport permanently removes an export and its pages.
	// Returns ENOTFOUND if export does not exist.
	DeleteExport(ctx context.Context, id string) error
}

// ExportFilter represents a filter for FindExports.
type ExportFilter struct {
	ID       *string `json:"id"`
	StartURL *string `json:"startUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
