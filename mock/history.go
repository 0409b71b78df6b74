package mock

import (
	"context"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.ExportService = (*ExportService)(nil)

// ExportService is a mock implementation of sitepdf.ExportService.
type ExportService struct {
	CreateExportFn   func(ctx context.Context, export *sitepdf.Export) error
	FindExportByIDFn func(ctx context.Context, id string) (*sitepdf.Export, error)
	FindExportsFn    func(ctx context.Context, filter sitepdf.ExportFilter) ([]*sitepdf.Export, error)
	DeleteExportFn   func(ctx context.Context, id string) error
}

func (s *ExportService) CreateExport(ctx context.Context, export *sitepdf.Export) error {
	return s.CreateExportFn(ctx, export)
}

func (s *ExportService) FindExportByID(ctx context.Context, id string) (*sitepdf.Export, error) {
	return s.FindExportByIDFn(ctx, id)
}

func (s *ExportService) FindExports(ctx context.Context, filter sitepdf.ExportFilter) ([]*sitepdf.Export, error) {
	return s.FindExportsFn(ctx, filter)
}

func (s *ExportService) DeleteExport(ctx context.Context, id string) error {
	return s.DeleteExportFn(ctx, id)
}
