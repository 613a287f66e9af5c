package query

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/google/uuid"
)

// One is the admin single-project read. Live, with an ownership check.
func (q *ListProjects) One(ctx context.Context, projectID uuid.UUID, identity *auth.Identity) (*db.Project, error) {
	uow := q.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	return ownedProject(ctx, tx, projectID, identity)
}
