package commands

import (
	"context"

	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DeleteEntry struct {
	mutator *Mutator
}

func NewDeleteEntry(mutator *Mutator) *DeleteEntry {
	return &DeleteEntry{mutator: mutator}
}

func (c *DeleteEntry) Execute(ctx context.Context, projectID, entryID uuid.UUID, identity *auth.Identity) error {
	return c.mutator.Mutate(ctx, func(tx pgx.Tx) ([]Invalidation, error) {
		project, err := repo.NewProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if err := requireOwner(ctx, tx, project, identity); err != nil {
			return nil, err
		}

		entries := repo.NewEntryRepo(tx)
		entry, err := entries.GetByID(ctx, projectID, entryID)
		if err != nil {
			return nil, err
		}
		if err := entries.Delete(ctx, projectID, entryID); err != nil {
			return nil, err
		}
		return []Invalidation{{ProjectID: projectID, EntrySlug: entry.Slug}}, nil
	})
}
