package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/google/uuid"
)

// Cache is the read-through cache in front of the primary store for
// the three public read shapes. It is strictly best-effort: every
// backend failure is downgraded to a miss on reads and to a no-op on
// writes, so callers can always fall back to the primary store.
type Cache struct {
	store Store
	ttl   time.Duration
}

func New(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl}
}

// GetProject returns the cached project or nil on a miss.
func (c *Cache) GetProject(ctx context.Context, projectID uuid.UUID) *db.Project {
	raw := c.get(ctx, ProjectKey(projectID))
	if raw == nil {
		return nil
	}
	var project db.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		slog.Error("failed to decode cached project", "projectID", projectID, "err", err)
		return nil
	}
	return &project
}

// GetEntries returns the cached published-entries list for a project.
// The second return value distinguishes a cached empty list from a miss.
func (c *Cache) GetEntries(ctx context.Context, projectID uuid.UUID) ([]db.Entry, bool) {
	raw := c.get(ctx, EntriesKey(projectID))
	if raw == nil {
		return nil, false
	}
	var entries []db.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Error("failed to decode cached entries", "projectID", projectID, "err", err)
		return nil, false
	}
	return entries, true
}

// GetEntry returns the cached published entry or nil on a miss.
func (c *Cache) GetEntry(ctx context.Context, projectID uuid.UUID, entrySlug string) *db.Entry {
	raw := c.get(ctx, EntryKey(projectID, entrySlug))
	if raw == nil {
		return nil
	}
	var entry db.Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.Error("failed to decode cached entry", "projectID", projectID, "slug", entrySlug, "err", err)
		return nil
	}
	return &entry
}

func (c *Cache) get(ctx context.Context, key string) []byte {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			slog.Warn("cache read failed, treating as miss", "key", key, "err", err)
		}
		return nil
	}
	return raw
}
