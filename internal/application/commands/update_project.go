package commands

import (
	"context"
	"fmt"

	"github.com/dirmaster/dirmaster-backend/internal/application/dto"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/validation"
	"github.com/dirmaster/dirmaster-backend/internal/infra/auth"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UpdateProject struct {
	mutator *Mutator
}

func NewUpdateProject(mutator *Mutator) *UpdateProject {
	return &UpdateProject{mutator: mutator}
}

func (c *UpdateProject) Execute(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest, identity *auth.Identity) (uuid.UUID, error) {
	if err := validation.Struct(req); err != nil {
		return uuid.Nil, err
	}

	err := c.mutator.Mutate(ctx, func(tx pgx.Tx) ([]Invalidation, error) {
		projects := repo.NewProjectRepo(tx)
		project, err := projects.GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if err := requireOwner(ctx, tx, project, identity); err != nil {
			return nil, err
		}

		if req.Name != nil {
			project.Name = *req.Name
		}
		if req.Slug != nil {
			project.Slug = *req.Slug
		}
		if req.Domain != nil {
			project.Domain = req.Domain
		}
		if req.Settings != nil {
			project.Settings = db.MapToRawMessage(*req.Settings)
		}

		if err := projects.Update(ctx, *project); err != nil {
			return nil, err
		}
		// settings can change list rendering, so the list key goes too
		return []Invalidation{{ProjectID: projectID}}, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return projectID, nil
}

// requireOwner rejects writes against a project that the authenticated
// owner does not hold.
func requireOwner(ctx context.Context, tx pgx.Tx, project *db.Project, identity *auth.Identity) error {
	owner, err := repo.NewOwnerRepo(tx).GetByID(ctx, project.OwnerID)
	if err != nil {
		return err
	}
	if owner.Email != identity.Email {
		return errs.PermissionsError{Err: fmt.Errorf("project %s does not belong to %s", project.ID, identity.Email)}
	}
	return nil
}
