package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/google/uuid"
)

// SetProject stores a project under its key, replacing any previous
// value. Failures are logged and swallowed.
func (c *Cache) SetProject(ctx context.Context, project *db.Project) {
	c.set(ctx, ProjectKey(project.ID), project)
}

// SetEntries stores the published-entries list for a project.
func (c *Cache) SetEntries(ctx context.Context, projectID uuid.UUID, entries []db.Entry) {
	if entries == nil {
		entries = []db.Entry{}
	}
	c.set(ctx, EntriesKey(projectID), entries)
}

// SetEntry stores one published entry keyed by project and slug.
func (c *Cache) SetEntry(ctx context.Context, entry *db.Entry) {
	c.set(ctx, EntryKey(entry.ProjectID, entry.Slug), entry)
}

// InvalidateProject drops the project key and the entries-list key:
// a settings change can affect how the list renders.
func (c *Cache) InvalidateProject(ctx context.Context, projectID uuid.UUID) {
	keys := []string{ProjectKey(projectID), EntriesKey(projectID)}
	if err := c.store.Del(ctx, keys...); err != nil {
		slog.Error("failed to invalidate project cache", "projectID", projectID, "err", err)
	}
}

// InvalidateEntry drops the single-entry key and the entries-list key:
// any entry mutation can change list contents or ordering.
func (c *Cache) InvalidateEntry(ctx context.Context, projectID uuid.UUID, entrySlug string) {
	keys := []string{EntryKey(projectID, entrySlug), EntriesKey(projectID)}
	if err := c.store.Del(ctx, keys...); err != nil {
		slog.Error("failed to invalidate entry cache", "projectID", projectID, "slug", entrySlug, "err", err)
	}
}

func (c *Cache) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Error("failed to encode cache value", "key", key, "err", err)
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		slog.Error("failed to set cache value", "key", key, "err", err)
	}
}
