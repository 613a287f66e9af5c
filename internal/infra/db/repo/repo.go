package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/application/consts"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/interfaces"
	domain "github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OwnerRepo struct {
	tx pgx.Tx
}

func NewOwnerRepo(tx pgx.Tx) *OwnerRepo {
	return &OwnerRepo{tx: tx}
}

// GetOrCreateByEmail resolves an owner id for an authenticated email,
// creating the owner row on first sight.
func (o *OwnerRepo) GetOrCreateByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := o.tx.QueryRow(ctx, "SELECT id FROM dirmaster.owners WHERE email = $1", email).Scan(&ownerID)
	if err == nil {
		return ownerID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("err getting owner by email, %v", err)
	}
	ownerID = uuid.New()
	_, err = o.tx.Exec(ctx, "INSERT INTO dirmaster.owners(id, email, created_at) VALUES ($1,$2,$3)",
		ownerID, email, time.Now())
	if err != nil {
		return uuid.Nil, fmt.Errorf("err creating owner, %v", err)
	}
	return ownerID, nil
}

func (o *OwnerRepo) GetByID(ctx context.Context, ownerID uuid.UUID) (*db.Owner, error) {
	var owner db.Owner
	err := o.tx.QueryRow(ctx, "SELECT id, email, name, created_at FROM dirmaster.owners WHERE id = $1", ownerID).Scan(
		&owner.ID, &owner.Email, &owner.Name, &owner.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Resource: "owner"}
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

type ProjectRepo struct {
	tx pgx.Tx
}

func NewProjectRepo(tx pgx.Tx) *ProjectRepo {
	return &ProjectRepo{tx: tx}
}

const projectColumns = "id, owner_id, name, slug, domain, settings, created_at"

func (p *ProjectRepo) scanProject(row pgx.Row) (*db.Project, error) {
	var project db.Project
	err := row.Scan(&project.ID, &project.OwnerID, &project.Name, &project.Slug,
		&project.Domain, &project.Settings, &project.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Resource: "project"}
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *ProjectRepo) GetByID(ctx context.Context, projectID uuid.UUID) (*db.Project, error) {
	query := "SELECT " + projectColumns + " FROM dirmaster.projects WHERE id = $1"
	return p.scanProject(p.tx.QueryRow(ctx, query, projectID))
}

func (p *ProjectRepo) GetBySlug(ctx context.Context, slug string) (*db.Project, error) {
	query := "SELECT " + projectColumns + " FROM dirmaster.projects WHERE slug = $1"
	return p.scanProject(p.tx.QueryRow(ctx, query, slug))
}

func (p *ProjectRepo) Insert(ctx context.Context, project db.Project) error {
	_, err := p.tx.Exec(ctx,
		"INSERT INTO dirmaster.projects(id, owner_id, name, slug, domain, settings, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)",
		project.ID, project.OwnerID, project.Name, project.Slug, project.Domain, project.Settings, project.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert failed: %v", err)
	}
	return nil
}

func (p *ProjectRepo) Update(ctx context.Context, project db.Project) error {
	_, err := p.tx.Exec(ctx,
		"UPDATE dirmaster.projects SET name = $1, slug = $2, domain = $3, settings = $4 WHERE id = $5",
		project.Name, project.Slug, project.Domain, project.Settings, project.ID)
	if err != nil {
		return fmt.Errorf("update failed: %v", err)
	}
	return nil
}

func (p *ProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Project, error) {
	query := "SELECT " + projectColumns + " FROM dirmaster.projects WHERE owner_id = $1 ORDER BY created_at DESC"
	rows, err := p.tx.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []db.Project
	for rows.Next() {
		var project db.Project
		if err := rows.Scan(&project.ID, &project.OwnerID, &project.Name, &project.Slug,
			&project.Domain, &project.Settings, &project.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

type EntryRepo struct {
	tx pgx.Tx
}

func NewEntryRepo(tx pgx.Tx) *EntryRepo {
	return &EntryRepo{tx: tx}
}

const entryColumns = "id, project_id, title, slug, content, status, metadata, image_url, rejection_reason, created_at, published_at"

func scanEntry(row pgx.Row) (*db.Entry, error) {
	var entry db.Entry
	err := row.Scan(&entry.ID, &entry.ProjectID, &entry.Title, &entry.Slug, &entry.Content,
		&entry.Status, &entry.Metadata, &entry.ImageURL, &entry.RejectionReason,
		&entry.CreatedAt, &entry.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundError{Resource: "entry"}
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (e *EntryRepo) GetByID(ctx context.Context, projectID, entryID uuid.UUID) (*db.Entry, error) {
	query := "SELECT " + entryColumns + " FROM dirmaster.entries WHERE id = $1 AND project_id = $2"
	return scanEntry(e.tx.QueryRow(ctx, query, entryID, projectID))
}

// GetPublishedBySlug serves the public entry page: pending, draft and
// archived entries are invisible there.
func (e *EntryRepo) GetPublishedBySlug(ctx context.Context, projectID uuid.UUID, slug string) (*db.Entry, error) {
	query := "SELECT " + entryColumns + " FROM dirmaster.entries WHERE project_id = $1 AND slug = $2 AND status = $3"
	return scanEntry(e.tx.QueryRow(ctx, query, projectID, slug, domain.EntryStatusPublished))
}

func (e *EntryRepo) ListPublished(ctx context.Context, projectID uuid.UUID) ([]db.Entry, error) {
	query := "SELECT " + entryColumns + " FROM dirmaster.entries WHERE project_id = $1 AND status = $2 ORDER BY published_at DESC NULLS LAST"
	rows, err := e.tx.Query(ctx, query, projectID, domain.EntryStatusPublished)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// List returns the admin view. An empty status lists everything.
func (e *EntryRepo) List(ctx context.Context, projectID uuid.UUID, status domain.EntryStatus) ([]db.Entry, error) {
	query := "SELECT " + entryColumns + " FROM dirmaster.entries WHERE project_id = $1 ORDER BY created_at DESC"
	args := []interface{}{projectID}
	if status != "" {
		query = "SELECT " + entryColumns + " FROM dirmaster.entries WHERE project_id = $1 AND status = $2 ORDER BY created_at DESC"
		args = append(args, status)
	}
	rows, err := e.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]db.Entry, error) {
	defer rows.Close()
	var entries []db.Entry
	for rows.Next() {
		var entry db.Entry
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.Title, &entry.Slug, &entry.Content,
			&entry.Status, &entry.Metadata, &entry.ImageURL, &entry.RejectionReason,
			&entry.CreatedAt, &entry.PublishedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SlugExists reports whether another entry in the project already uses
// the slug. excludeID skips the entry being updated.
func (e *EntryRepo) SlugExists(ctx context.Context, projectID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	var count int
	err := e.tx.QueryRow(ctx,
		"SELECT count(*) FROM dirmaster.entries WHERE project_id = $1 AND slug = $2 AND id != $3",
		projectID, slug, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (e *EntryRepo) Insert(ctx context.Context, entry db.Entry) error {
	_, err := e.tx.Exec(ctx,
		`INSERT INTO dirmaster.entries(id, project_id, title, slug, content, status, metadata, image_url, rejection_reason, created_at, published_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		entry.ID, entry.ProjectID, entry.Title, entry.Slug, entry.Content, entry.Status,
		entry.Metadata, entry.ImageURL, entry.RejectionReason, entry.CreatedAt, entry.PublishedAt)
	if err != nil {
		return fmt.Errorf("insert failed: %v", err)
	}
	return nil
}

func (e *EntryRepo) Update(ctx context.Context, entry db.Entry) error {
	_, err := e.tx.Exec(ctx,
		`UPDATE dirmaster.entries SET title = $1, slug = $2, content = $3, status = $4, metadata = $5,
			image_url = $6, rejection_reason = $7, published_at = $8 WHERE id = $9`,
		entry.Title, entry.Slug, entry.Content, entry.Status, entry.Metadata,
		entry.ImageURL, entry.RejectionReason, entry.PublishedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("update failed: %v", err)
	}
	return nil
}

func (e *EntryRepo) Delete(ctx context.Context, projectID, entryID uuid.UUID) error {
	tag, err := e.tx.Exec(ctx, "DELETE FROM dirmaster.entries WHERE id = $1 AND project_id = $2", entryID, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundError{Resource: "entry"}
	}
	return nil
}

type EventRepo struct {
	tx pgx.Tx
}

var _ interfaces.EventRepo = (*EventRepo)(nil)

func NewEventRepo(tx pgx.Tx) *EventRepo {
	return &EventRepo{tx: tx}
}

func (e *EventRepo) InsertEvent(ctx context.Context, event interfaces.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("err marshalling event payload, %v", err)
	}
	outbox := db.Outbox{
		Event:     event.GetType(),
		Status:    int(consts.NotProcessed),
		Payload:   json.RawMessage(payload),
		CreatedAt: time.Now(),
	}
	_, err = e.tx.Exec(ctx, "INSERT INTO dirmaster.outbox (event, status, payload, created_at) VALUES ($1,$2,$3,$4)",
		outbox.Event, outbox.Status, outbox.Payload, outbox.CreatedAt)
	if err != nil {
		return fmt.Errorf("err inserting a new event, %v", err)
	}
	return nil
}
