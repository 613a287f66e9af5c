package query

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/google/uuid"
)

// ListEntries is the admin entry list, optionally filtered by status.
// Reads live so drafts and pending submissions show up immediately.
type ListEntries struct {
	factory *dbs.UOWFactory
}

func NewListEntries(factory *dbs.UOWFactory) *ListEntries {
	return &ListEntries{factory: factory}
}

func (q *ListEntries) Query(ctx context.Context, projectID uuid.UUID, status string, identity *auth.Identity) ([]db.Entry, error) {
	if status != "" && !consts.ValidEntryStatus(status) {
		return nil, errs.ValidationError{Msg: "unknown entry status"}
	}

	uow := q.factory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	if _, err = ownedProject(ctx, tx, projectID, identity); err != nil {
		return nil, err
	}

	return repo.NewEntryRepo(tx).List(ctx, projectID, consts.EntryStatus(status))
}
