package commands

import (
	"context"
	"errors"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/validation"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreateProject struct {
	mutator *Mutator
}

func NewCreateProject(mutator *Mutator) *CreateProject {
	return &CreateProject{mutator: mutator}
}

func (c *CreateProject) Execute(ctx context.Context, req *dto.CreateProjectRequest, identity *auth.Identity) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	var projectID uuid.UUID
	err := c.mutator.Mutate(ctx, func(tx pgx.Tx) ([]Invalidation, error) {
		ownerID, err := repo.NewOwnerRepo(tx).GetOrCreateByEmail(ctx, identity.Email)
		if err != nil {
			return nil, err
		}

		projects := repo.NewProjectRepo(tx)
		if _, err := projects.GetBySlug(ctx, req.Slug); err == nil {
			return nil, errs.ValidationError{Msg: "slug is already taken"}
		} else {
			var notFound errs.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}

		newProject := db.Project{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Name:      req.Name,
			Slug:      req.Slug,
			Domain:    req.Domain,
			Settings:  db.MapToRawMessage(req.Settings),
			CreatedAt: time.Now(),
		}
		if err := projects.Insert(ctx, newProject); err != nil {
			return nil, err
		}
		projectID = newProject.ID
		// nothing cached yet for a brand-new project
		return nil, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return projectID, nil
}
