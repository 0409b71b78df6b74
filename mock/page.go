package mock

import (
	"context"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of sitepdf.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *sitepdf.PageRecord) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *sitepdf.PageRecord) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
