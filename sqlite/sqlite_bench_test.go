package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateExport records a maximum-size crawl per iteration.
func BenchmarkCreateExport(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewExportService(db)
	ctx := context.Background()

	pages := make([]*sitepdf.ExportPage, 75)
	for i := range pages {
		pages[i] = &sitepdf.ExportPage{
			URL:   fmt.Sprintf("https://example.com/docs/page%d", i),
			Title: fmt.Sprintf("Page %d", i),
		}
	}

	for i := 0; b.Loop(); i++ {
		export := &sitepdf.Export{
			StartURL: "https://example.com/docs",
			Filename: fmt.Sprintf("example.com-crawl-%d.pdf", i),
			Pages:    pages,
		}
		if err := svc.CreateExport(ctx, export); err != nil {
			b.Fatal(err)
		}
	}
}
