package query

import (
	"context"
	"errors"

	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListProjects is the admin dashboard read. It always goes to the
// primary store, the dashboard must never show stale data.
type ListProjects struct {
	factory *dbs.UOWFactory
}

func NewListProjects(factory *dbs.UOWFactory) *ListProjects {
	return &ListProjects{factory: factory}
}

func (q *ListProjects) Query(ctx context.Context, identity *auth.Identity) ([]db.Project, error) {
	uow := q.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	var ownerID uuid.UUID
	err = tx.QueryRow(ctx, "SELECT id FROM dirmaster.owners WHERE email = $1", identity.Email).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// an owner with no projects yet
			err = nil
			return []db.Project{}, nil
		}
		return nil, err
	}

	return repo.NewProjectRepo(tx).ListByOwner(ctx, ownerID)
}

// ownedProject loads a project and verifies the identity holds it.
func ownedProject(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, identity *auth.Identity) (*db.Project, error) {
	project, err := repo.NewProjectRepo(tx).GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	owner, err := repo.NewOwnerRepo(tx).GetByID(ctx, project.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.Email != identity.Email {
		return nil, errs.PermissionsError{Err: errors.New("project does not belong to caller")}
	}
	return project, nil
}
