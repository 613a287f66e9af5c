package query_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/query"
	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/dirmaster/dirmaster-backend/internal/testinfra"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var uowFactory *dbs.UOWFactory

func TestMain(m *testing.M) {
	uowFactory = dbs.NewUoWFactory(testinfra.Pool)
	code := m.Run()
	os.Exit(code)
}

func newCache() *cache.Cache {
	return cache.New(cache.NewMemoryStore(), time.Hour)
}

func seedProject(t *testing.T) db.Project {
	t.Helper()
	ctx := context.Background()

	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)

	ownerID, err := repo.NewOwnerRepo(tx).GetOrCreateByEmail(ctx, uuid.NewString()+"@example.com")
	require.NoError(t, err)

	project := db.Project{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "Cached Directory",
		Slug:      "cached-" + uuid.NewString()[:8],
		Settings:  json.RawMessage(`{}`),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.NewProjectRepo(tx).Insert(ctx, project))
	require.NoError(t, uow.Commit())

	t.Cleanup(func() { deleteProject(t, project.ID) })
	return project
}

func seedPublishedEntry(t *testing.T, projectID uuid.UUID, slug string) db.Entry {
	t.Helper()
	ctx := context.Background()

	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)

	now := time.Now()
	entry := db.Entry{
		ID: uuid.New(), ProjectID: projectID, Title: slug, Slug: slug,
		Status: consts.EntryStatusPublished, Metadata: json.RawMessage(`{}`),
		CreatedAt: now, PublishedAt: &now,
	}
	require.NoError(t, repo.NewEntryRepo(tx).Insert(ctx, entry))
	require.NoError(t, uow.Commit())
	return entry
}

func deleteProject(t *testing.T, projectID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	_, err := testinfra.Pool.Exec(ctx, "DELETE FROM dirmaster.entries WHERE project_id = $1", projectID)
	require.NoError(t, err)
	_, err = testinfra.Pool.Exec(ctx, "DELETE FROM dirmaster.projects WHERE id = $1", projectID)
	require.NoError(t, err)
}

func TestGetProjectServesFromCacheAfterFirstRead(t *testing.T) {
	ctx := context.Background()
	project := seedProject(t)
	getProject := query.NewGetProject(uowFactory, newCache())

	got, err := getProject.Query(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, project.Name, got.Name)

	// the row is gone but the cache still answers
	deleteProject(t, project.ID)

	got, err = getProject.Query(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, project.Name, got.Name)
}

func TestGetProjectMissReturnsNotFound(t *testing.T) {
	getProject := query.NewGetProject(uowFactory, newCache())

	_, err := getProject.Query(context.Background(), uuid.New())

	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetEntriesCachesEmptyList(t *testing.T) {
	ctx := context.Background()
	project := seedProject(t)
	siteCache := newCache()
	getEntries := query.NewGetEntries(uowFactory, siteCache)

	entries, err := getEntries.Query(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, entries)

	// a cached empty list is a hit, not a retry against the store
	cached, ok := siteCache.GetEntries(ctx, project.ID)
	require.True(t, ok)
	require.Empty(t, cached)
}

func TestGetEntryServesFromCacheAfterFirstRead(t *testing.T) {
	ctx := context.Background()
	project := seedProject(t)
	entry := seedPublishedEntry(t, project.ID, "kept-around")
	getEntry := query.NewGetEntry(uowFactory, newCache())

	got, err := getEntry.Query(ctx, project.ID, entry.Slug)
	require.NoError(t, err)
	require.Equal(t, entry.ID, got.ID)

	_, err = testinfra.Pool.Exec(ctx, "DELETE FROM dirmaster.entries WHERE id = $1", entry.ID)
	require.NoError(t, err)

	got, err = getEntry.Query(ctx, project.ID, entry.Slug)
	require.NoError(t, err)
	require.Equal(t, entry.ID, got.ID)
}

func TestGetProjectBySlugResolvesThroughCache(t *testing.T) {
	ctx := context.Background()
	project := seedProject(t)
	getProject := query.NewGetProject(uowFactory, newCache())

	got, err := getProject.BySlug(ctx, project.Slug)
	require.NoError(t, err)
	require.Equal(t, project.ID, got.ID)

	_, err = getProject.BySlug(ctx, "no-such-project")
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
