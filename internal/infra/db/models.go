package db

import (
	"encoding/json"
	"time"

	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/google/uuid"
)

type Owner struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      *string   `db:"name" json:"name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Project struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	OwnerID   uuid.UUID       `db:"owner_id" json:"ownerId"`
	Name      string          `db:"name" json:"name"`
	Slug      string          `db:"slug" json:"slug"`
	Domain    *string         `db:"domain" json:"domain,omitempty"`
	Settings  json.RawMessage `db:"settings" json:"settings"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

type Entry struct {
	ID              uuid.UUID          `db:"id" json:"id"`
	ProjectID       uuid.UUID          `db:"project_id" json:"projectId"`
	Title           string             `db:"title" json:"title"`
	Slug            string             `db:"slug" json:"slug"`
	Content         string             `db:"content" json:"content"`
	Status          consts.EntryStatus `db:"status" json:"status"`
	Metadata        json.RawMessage    `db:"metadata" json:"metadata"`
	ImageURL        *string            `db:"image_url" json:"imageUrl,omitempty"`
	RejectionReason *string            `db:"rejection_reason" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `db:"created_at" json:"createdAt"`
	PublishedAt     *time.Time         `db:"published_at" json:"publishedAt,omitempty"`
}

type Outbox struct {
	ID        uint64          `db:"id"`
	Event     string          `db:"event"`
	Status    int             `db:"status"`
	Payload   json.RawMessage `db:"payload"`
	CreatedAt time.Time       `db:"created_at"`
}
