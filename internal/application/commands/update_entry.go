package commands

import (
	"context"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/events"
	"github.com/dirmaster/dirmaster-backend/internal/application/validation"
	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UpdateEntry struct {
	mutator *Mutator
}

func NewUpdateEntry(mutator *Mutator) *UpdateEntry {
	return &UpdateEntry{mutator: mutator}
}

func (c *UpdateEntry) Execute(ctx context.Context, projectID, entryID uuid.UUID, req *dto.UpdateEntryRequest, identity *auth.Identity) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	err := c.mutator.Mutate(ctx, func(tx pgx.Tx) ([]Invalidation, error) {
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
		oldSlug := entry.Slug
		oldStatus := entry.Status

		if req.Title != nil {
			entry.Title = *req.Title
		}
		if req.Slug != nil && *req.Slug != entry.Slug {
			taken, err := entries.SlugExists(ctx, projectID, *req.Slug, entryID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errs.ValidationError{Msg: "slug is already used by another entry"}
			}
			entry.Slug = *req.Slug
		}
		if req.Content != nil {
			entry.Content = *req.Content
		}
		if req.Metadata != nil {
			entry.Metadata = db.MapToRawMessage(*req.Metadata)
		}
		if req.ImageURL != nil {
			if *req.ImageURL == "" {
				entry.ImageURL = nil
			} else {
				entry.ImageURL = req.ImageURL
			}
		}

		if req.Status != nil && consts.EntryStatus(*req.Status) != oldStatus {
			newStatus := consts.EntryStatus(*req.Status)
			if !consts.CanTransition(oldStatus, newStatus) {
				return nil, errs.InvalidTransitionError{From: oldStatus, To: newStatus}
			}
			entry.Status = newStatus
			switch {
			case newStatus == consts.EntryStatusPublished:
				if entry.PublishedAt == nil {
					now := time.Now()
					entry.PublishedAt = &now
				}
				err = repo.NewEventRepo(tx).InsertEvent(ctx, events.EntryPublished{
					ProjectID: projectID,
					EntrySlug: entry.Slug,
				})
				if err != nil {
					return nil, err
				}
			case oldStatus == consts.EntryStatusPublished:
				entry.PublishedAt = nil
			}
		}

		if err := entries.Update(ctx, *entry); err != nil {
			return nil, err
		}

		invalidations := []Invalidation{{ProjectID: projectID, EntrySlug: entry.Slug}}
		if oldSlug != entry.Slug {
			// the renamed slug must not serve the old cached object
			invalidations = append(invalidations, Invalidation{ProjectID: projectID, EntrySlug: oldSlug})
		}
		return invalidations, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entryID, nil
}
