package query

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/google/uuid"
)

// GetEntry serves a single published entry page by slug.
type GetEntry struct {
	factory *dbs.UOWFactory
	cache   *cache.Cache
}

func NewGetEntry(factory *dbs.UOWFactory, cache *cache.Cache) *GetEntry {
	return &GetEntry{factory: factory, cache: cache}
}

func (q *GetEntry) Query(ctx context.Context, projectID uuid.UUID, entrySlug string) (*db.Entry, error) {
	if entry := q.cache.GetEntry(ctx, projectID, entrySlug); entry != nil {
		return entry, nil
	}

	uow := q.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	entry, err := repo.NewEntryRepo(tx).GetPublishedBySlug(ctx, projectID, entrySlug)
	if err != nil {
		return nil, err
	}

	q.cache.SetEntry(ctx, entry)
	return entry, nil
}
