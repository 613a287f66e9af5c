package query

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/google/uuid"
)

// GetEntries serves the public list of published entries for a
// project. An empty list is cached like any other value, so a project
// without entries does not hammer the primary store.
type GetEntries struct {
	factory *dbs.UOWFactory
	cache   *cache.Cache
}

func NewGetEntries(factory *dbs.UOWFactory, cache *cache.Cache) *GetEntries {
	return &GetEntries{factory: factory, cache: cache}
}

func (q *GetEntries) Query(ctx context.Context, projectID uuid.UUID) ([]db.Entry, error) {
	if entries, ok := q.cache.GetEntries(ctx, projectID); ok {
		return entries, nil
	}

	uow := q.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	entries, err := repo.NewEntryRepo(tx).ListPublished(ctx, projectID)
	if err != nil {
		return nil, err
	}

	q.cache.SetEntries(ctx, projectID, entries)
	return entries, nil
}
