package interfaces

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"
)

type UoW interface {
	Begin() (pgx.Tx, error)
	Commit() error
	Rollback() error
	GetTx() pgx.Tx
}

type Event interface {
	GetType() string
}

type EventRepo interface {
	InsertEvent(ctx context.Context, event Event) error
}

type Uploader interface {
	UploadFile(ctx context.Context, key string, contentType *string, body io.Reader) (string, error)
}

type DomainChecker interface {
	CheckAvailability(ctx context.Context, domain string) (bool, error)
}

type Mailer interface {
	SendMail(to []string, subject, body string) error
}
