package commands

import (
	"context"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/validation"
	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreateEntry struct {
	mutator *Mutator
}

func NewCreateEntry(mutator *Mutator) *CreateEntry {
	return &CreateEntry{mutator: mutator}
}

func (c *CreateEntry) Execute(ctx context.Context, projectID uuid.UUID, req *dto.CreateEntryRequest, identity *auth.Identity) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}
	status := consts.EntryStatus(req.Status)
	if req.Status == "" {
		status = consts.EntryStatusDraft
	}

	var entryID uuid.UUID
	err := c.mutator.Mutate(ctx, func(tx pgx.Tx) ([]Invalidation, error) {
		project, err := repo.NewProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if err := requireOwner(ctx, tx, project, identity); err != nil {
			return nil, err
		}

		entries := repo.NewEntryRepo(tx)
		taken, err := entries.SlugExists(ctx, projectID, req.Slug, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.ValidationError{Msg: "slug is already used by another entry"}
		}

		newEntry := db.Entry{
			ID:        uuid.New(),
			ProjectID: projectID,
			Title:     req.Title,
			Slug:      req.Slug,
			Content:   req.Content,
			Status:    status,
			Metadata:  db.MapToRawMessage(req.Metadata),
			CreatedAt: time.Now(),
		}
		if req.ImageURL != "" {
			newEntry.ImageURL = &req.ImageURL
		}
		if status == consts.EntryStatusPublished {
			now := time.Now()
			newEntry.PublishedAt = &now
		}

		if err := entries.Insert(ctx, newEntry); err != nil {
			return nil, err
		}
		entryID = newEntry.ID
		return []Invalidation{{ProjectID: projectID, EntrySlug: newEntry.Slug}}, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entryID, nil
}
