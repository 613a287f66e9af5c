package processors

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/application/events"
	"github.com/dirmaster/dirmaster-backend/internal/application/interfaces"
	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
)

// EntryPublished drops the cache keys the newly published entry makes
// stale. Commands already invalidate inline, this consumer is the
// backstop for publishes that happen through the review flow.
type EntryPublished struct {
	cache *cache.Cache
}

func NewEntryPublished(cache *cache.Cache) *EntryPublished {
	return &EntryPublished{cache: cache}
}

func (p *EntryPublished) Handle(ctx context.Context, event events.EntryPublished) (interfaces.UoW, error) {
	p.cache.InvalidateEntry(ctx, event.ProjectID, event.EntrySlug)
	return nil, nil
}
