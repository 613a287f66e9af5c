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
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultRejectionReason = "Not approved"

// ReviewEntry resolves a pending submission: approve publishes it,
// reject parks it with a reason.
type ReviewEntry struct {
	mutator *Mutator
}

func NewReviewEntry(mutator *Mutator) *ReviewEntry {
	return &ReviewEntry{mutator: mutator}
}

func (c *ReviewEntry) Execute(ctx context.Context, projectID, entryID uuid.UUID, req *dto.ReviewEntryRequest, identity *auth.Identity) (consts.EntryStatus, error) {
	if err := validation.Struct(req); err != nil {
		return "", err
	}

	target := consts.EntryStatusPublished
	if req.Action == "reject" {
		target = consts.EntryStatusRejected
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
		if !consts.CanTransition(entry.Status, target) || entry.Status == target {
			return nil, errs.InvalidTransitionError{From: entry.Status, To: target}
		}

		entry.Status = target
		if target == consts.EntryStatusPublished {
			now := time.Now()
			entry.PublishedAt = &now
			err = repo.NewEventRepo(tx).InsertEvent(ctx, events.EntryPublished{
				ProjectID: projectID,
				EntrySlug: entry.Slug,
			})
			if err != nil {
				return nil, err
			}
		} else {
			reason := req.Reason
			if reason == "" {
				reason = defaultRejectionReason
			}
			entry.RejectionReason = &reason
		}

		if err := entries.Update(ctx, *entry); err != nil {
			return nil, err
		}
		return []Invalidation{{ProjectID: projectID, EntrySlug: entry.Slug}}, nil
	})
	if err != nil {
		return "", err
	}
	return target, nil
}
