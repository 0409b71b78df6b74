package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitepdf.ExportService = (*ExportService)(nil)

// ExportService implements sitepdf.ExportService using SQLite.
type ExportService struct {
	db *DB
}

// NewExportService creates a new ExportService.
func NewExportService(db *DB) *ExportService {
	return &ExportService{db: db}
}

// CreateExport records an export and its pages in one transaction.
// The ID and creation time are assigned here.
func (s *ExportService) CreateExport(ctx context.Context, export *sitepdf.Export) error {
	if err := export.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO exports (id, start_url, filename, path, bytes, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, export.StartURL, export.Filename, export.Path, export.Bytes, export.ContentHash,
		createdAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, page := range export.Pages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO export_pages (export_id, position, url, title)
			VALUES (?, ?, ?, ?)
		`, id, i, page.URL, page.Title); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	export.ID = id
	export.CreatedAt = createdAt
	for i, page := range export.Pages {
		page.Position = i
	}
	return nil
}

// FindExportByID retrieves an export and its pages.
func (s *ExportService) FindExportByID(ctx context.Context, id string) (*sitepdf.Export, error) {
	exports, err := s.FindExports(ctx, sitepdf.ExportFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(exports) == 0 {
		return nil, sitepdf.Errorf(sitepdf.ENOTFOUND, "export not found")
	}

	export := exports[0]
	export.Pages, err = s.findPages(ctx, id)
	if err != nil {
		return nil, err
	}
	return export, nil
}

// FindExports retrieves exports matching the filter, newest first.
func (s *ExportService) FindExports(ctx context.Context, filter sitepdf.ExportFilter) ([]*sitepdf.Export, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, start_url, filename, path, bytes, content_hash, created_at FROM exports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.StartURL != nil {
		query.WriteString(" AND start_url = ?")
		args = append(args, *filter.StartURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []*sitepdf.Export
	for rows.Next() {
		var export sitepdf.Export
		var createdAt string

		if err := rows.Scan(&export.ID, &export.StartURL, &export.Filename, &export.Path,
			&export.Bytes, &export.ContentHash, &createdAt); err != nil {
			return nil, err
		}

		export.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		exports = append(exports, &export)
	}

	return exports, rows.Err()
}

// DeleteExport permanently removes an export and its pages.
func (s *ExportService) DeleteExport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM exports WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sitepdf.Errorf(sitepdf.ENOTFOUND, "export not found")
	}

	return nil
}

func (s *ExportService) findPages(ctx context.Context, exportID string) ([]*sitepdf.ExportPage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, url, title
		FROM export_pages
		WHERE export_id = ?
		ORDER BY position
	`, exportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitepdf.ExportPage
	for rows.Next() {
		var page sitepdf.ExportPage
		if err := rows.Scan(&page.Position, &page.URL, &page.Title); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}
