package query

import (
	"context"
	"errors"

	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetProject is the public read path for a project. It answers from
// the cache when it can and repopulates it on a miss, so a hot site
// mostly never touches the primary store.
type GetProject struct {
	factory *dbs.UOWFactory
	cache   *cache.Cache
}

func NewGetProject(factory *dbs.UOWFactory, cache *cache.Cache) *GetProject {
	return &GetProject{factory: factory, cache: cache}
}

func (q *GetProject) Query(ctx context.Context, projectID uuid.UUID) (*db.Project, error) {
	if project := q.cache.GetProject(ctx, projectID); project != nil {
		return project, nil
	}

	uow := q.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	project, err := repo.NewProjectRepo(tx).GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	q.cache.SetProject(ctx, project)
	return project, nil
}

// BySlug resolves the public hostname path. The slug lookup is a thin
// live read; the heavy project payload still comes through the cache.
func (q *GetProject) BySlug(ctx context.Context, projectSlug string) (*db.Project, error) {
	uow := q.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}

	var projectID uuid.UUID
	err = tx.QueryRow(ctx, "SELECT id FROM dirmaster.projects WHERE slug = $1", projectSlug).Scan(&projectID)
	uow.Finalize(&err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFoundError{Resource: "project"}
		}
		return nil, err
	}

	return q.Query(ctx, projectID)
}
