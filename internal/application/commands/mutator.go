package commands

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Invalidation names cache keys to drop after a committed write. An
// empty EntrySlug means project-level (project key + entries list);
// otherwise the single-entry key + entries list.
type Invalidation struct {
	ProjectID uuid.UUID
	EntrySlug string
}

// Mutator couples a primary-store transaction with the cache
// invalidations it implies, so no call site can commit a write and
// forget the invalidation step. Invalidation failures are swallowed by
// the cache layer; a stale value self-corrects at TTL expiry.
type Mutator struct {
	factory *dbs.UOWFactory
	cache   *cache.Cache
}

func NewMutator(factory *dbs.UOWFactory, cache *cache.Cache) *Mutator {
	return &Mutator{factory: factory, cache: cache}
}

// Mutate runs fn inside one transaction and applies the returned
// invalidations only after a successful commit.
func (m *Mutator) Mutate(ctx context.Context, fn func(tx pgx.Tx) ([]Invalidation, error)) error {
	uow := m.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}

	invalidations, err := fn(tx)
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	for _, inv := range invalidations {
		if inv.EntrySlug == "" {
			m.cache.InvalidateProject(ctx, inv.ProjectID)
		} else {
			m.cache.InvalidateEntry(ctx, inv.ProjectID, inv.EntrySlug)
		}
	}
	return nil
}
