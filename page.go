package sitepdf

import "context"

// PageRecord is one crawled page's contribution to the export.
// Records are immutable once created and kept in crawl order.
type PageRecord struct {
	URL   string
	Title string
	Text  string
}

// CrawlTarget is a queued URL together with its hop distance from the start page.
type CrawlTarget struct {
	URL   string
	Depth int
}

// PageStore persists crawled pages with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *PageRecord) error
	Commit() error
	Abort() error
}
