package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/events"
	"github.com/dirmaster/dirmaster-backend/internal/application/validation"
	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/dirmaster/dirmaster-backend/pkg/slug"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const maxSlugAttempts = 50

// SubmitEntry accepts an unauthenticated public submission and files
// it as a pending entry for the owner to review.
type SubmitEntry struct {
	mutator *Mutator
}

func NewSubmitEntry(mutator *Mutator) *SubmitEntry {
	return &SubmitEntry{mutator: mutator}
}

func (c *SubmitEntry) Execute(ctx context.Context, req *dto.SubmitEntryRequest) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return uuid.Nil, errs.ValidationError{Msg: "projectId must be a valid uuid"}
	}
	name, ok := req.Data["name"].(string)
	if !ok || name == "" {
		return uuid.Nil, errs.ValidationError{Msg: "data.name is required"}
	}
	base := slug.Make(name)
	if base == "" {
		return uuid.Nil, errs.ValidationError{Msg: "data.name must contain at least one letter or digit"}
	}

	var entryID uuid.UUID
	err = c.mutator.Mutate(ctx, func(tx pgx.Tx) ([]Invalidation, error) {
		if _, err := repo.NewProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return nil, err
		}

		entries := repo.NewEntryRepo(tx)
		entrySlug, err := pickFreeSlug(ctx, entries, projectID, base)
		if err != nil {
			return nil, err
		}

		newEntry := db.Entry{
			ID:        uuid.New(),
			ProjectID: projectID,
			Title:     name,
			Slug:      entrySlug,
			Status:    consts.EntryStatusPending,
			Metadata:  db.MapToRawMessage(req.Data),
			CreatedAt: time.Now(),
		}
		if err := entries.Insert(ctx, newEntry); err != nil {
			return nil, err
		}

		err = repo.NewEventRepo(tx).InsertEvent(ctx, events.EntryReceived{
			ProjectID: projectID,
			EntryID:   newEntry.ID,
			Data:      req.Data,
		})
		if err != nil {
			return nil, err
		}

		entryID = newEntry.ID
		// pending entries never appear in cached reads, nothing to drop
		return nil, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entryID, nil
}

// pickFreeSlug appends -2, -3, ... until the slug is unused in the
// project.
func pickFreeSlug(ctx context.Context, entries *repo.EntryRepo, projectID uuid.UUID, base string) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := entries.SlugExists(ctx, projectID, candidate, uuid.Nil)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", errs.ValidationError{Msg: "could not allocate a unique slug"}
}
