package repo_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
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

func seedOwnerAndProject(t *testing.T, projects *repo.ProjectRepo, owners *repo.OwnerRepo) db.Project {
	t.Helper()
	ctx := context.Background()

	ownerID, err := owners.GetOrCreateByEmail(ctx, uuid.NewString()+"@example.com")
	require.NoError(t, err)

	project := db.Project{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "Test Directory",
		Slug:      "dir-" + uuid.NewString()[:8],
		Settings:  json.RawMessage(`{}`),
		CreatedAt: time.Now(),
	}
	require.NoError(t, projects.Insert(ctx, project))
	return project
}

func TestGetOrCreateByEmailIsIdempotent(t *testing.T) {
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	ctx := context.Background()
	owners := repo.NewOwnerRepo(tx)

	first, err := owners.GetOrCreateByEmail(ctx, "repeat@example.com")
	require.NoError(t, err)
	second, err := owners.GetOrCreateByEmail(ctx, "repeat@example.com")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProjectRoundTrip(t *testing.T) {
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	ctx := context.Background()
	projects := repo.NewProjectRepo(tx)
	project := seedOwnerAndProject(t, projects, repo.NewOwnerRepo(tx))

	got, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, project.Name, got.Name)
	require.Equal(t, project.Slug, got.Slug)

	bySlug, err := projects.GetBySlug(ctx, project.Slug)
	require.NoError(t, err)
	require.Equal(t, project.ID, bySlug.ID)
}

func TestGetProjectReturnsNotFound(t *testing.T) {
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	_, err = repo.NewProjectRepo(tx).GetByID(context.Background(), uuid.New())

	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListPublishedOrdersByPublishedAtDesc(t *testing.T) {
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	ctx := context.Background()
	projects := repo.NewProjectRepo(tx)
	entries := repo.NewEntryRepo(tx)
	project := seedOwnerAndProject(t, projects, repo.NewOwnerRepo(tx))

	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)
	insert := func(slug string, status consts.EntryStatus, publishedAt *time.Time) {
		require.NoError(t, entries.Insert(ctx, db.Entry{
			ID: uuid.New(), ProjectID: project.ID, Title: slug, Slug: slug,
			Status: status, Metadata: json.RawMessage(`{}`),
			CreatedAt: time.Now(), PublishedAt: publishedAt,
		}))
	}
	insert("older", consts.EntryStatusPublished, &older)
	insert("newer", consts.EntryStatusPublished, &newer)
	insert("hidden-draft", consts.EntryStatusDraft, nil)
	insert("hidden-pending", consts.EntryStatusPending, nil)

	published, err := entries.ListPublished(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, published, 2)
	require.Equal(t, "newer", published[0].Slug)
	require.Equal(t, "older", published[1].Slug)
}

func TestGetPublishedBySlugIgnoresDrafts(t *testing.T) {
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	ctx := context.Background()
	projects := repo.NewProjectRepo(tx)
	entries := repo.NewEntryRepo(tx)
	project := seedOwnerAndProject(t, projects, repo.NewOwnerRepo(tx))

	require.NoError(t, entries.Insert(ctx, db.Entry{
		ID: uuid.New(), ProjectID: project.ID, Title: "Draft", Slug: "draft-only",
		Status: consts.EntryStatusDraft, Metadata: json.RawMessage(`{}`), CreatedAt: time.Now(),
	}))

	_, err = entries.GetPublishedBySlug(ctx, project.ID, "draft-only")

	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSlugExistsExcludesGivenEntry(t *testing.T) {
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	ctx := context.Background()
	projects := repo.NewProjectRepo(tx)
	entries := repo.NewEntryRepo(tx)
	project := seedOwnerAndProject(t, projects, repo.NewOwnerRepo(tx))

	entryID := uuid.New()
	require.NoError(t, entries.Insert(ctx, db.Entry{
		ID: entryID, ProjectID: project.ID, Title: "Taken", Slug: "taken",
		Status: consts.EntryStatusDraft, Metadata: json.RawMessage(`{}`), CreatedAt: time.Now(),
	}))

	taken, err := entries.SlugExists(ctx, project.ID, "taken", uuid.Nil)
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = entries.SlugExists(ctx, project.ID, "taken", entryID)
	require.NoError(t, err)
	require.False(t, taken)
}

func TestDeleteMissingEntryReturnsNotFound(t *testing.T) {
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin()
	require.NoError(t, err)
	defer uow.Rollback()

	ctx := context.Background()
	projects := repo.NewProjectRepo(tx)
	project := seedOwnerAndProject(t, projects, repo.NewOwnerRepo(tx))

	err = repo.NewEntryRepo(tx).Delete(ctx, project.ID, uuid.New())

	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
