package processors

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dirmaster/dirmaster-backend/internal/application/events"
	"github.com/dirmaster/dirmaster-backend/internal/application/interfaces"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db/repo"
	"github.com/dirmaster/dirmaster-backend/internal/infra/mail"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
)

// EntryReceived notifies the project owner about a new pending
// submission. Mail delivery is best effort, a bounced notification
// must not put the event in error.
type EntryReceived struct {
	uowFactory *dbs.UOWFactory
	mailer     interfaces.Mailer
	fallbackTo string
}

func NewEntryReceived(uowFactory *dbs.UOWFactory, mailer interfaces.Mailer, fallbackTo string) *EntryReceived {
	return &EntryReceived{uowFactory: uowFactory, mailer: mailer, fallbackTo: fallbackTo}
}

func (p *EntryReceived) Handle(ctx context.Context, event events.EntryReceived) (interfaces.UoW, error) {
	uow := p.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}

	project, err := repo.NewProjectRepo(tx).GetByID(ctx, event.ProjectID)
	if err != nil {
		return uow, fmt.Errorf("error retrieving submission's project, %v", err)
	}
	owner, err := repo.NewOwnerRepo(tx).GetByID(ctx, project.OwnerID)
	if err != nil {
		return uow, fmt.Errorf("error retrieving project's owner, %v", err)
	}

	to := owner.Email
	if to == "" {
		to = p.fallbackTo
	}
	subject := fmt.Sprintf("New submission for %s", project.Name)
	body := mail.RenderSubmissionNotification(project.Name, event.Data)
	if err := p.mailer.SendMail([]string{to}, subject, body); err != nil {
		slog.Warn("could not deliver submission notification", "project", event.ProjectID, "err", err)
	}

	return uow, nil
}
