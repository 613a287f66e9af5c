package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dirmaster/dirmaster-backend/internal/application"
	"github.com/dirmaster/dirmaster-backend/internal/application/consts"
	"github.com/dirmaster/dirmaster-backend/internal/application/errs"
	"github.com/dirmaster/dirmaster-backend/internal/application/events"
	"github.com/dirmaster/dirmaster-backend/internal/application/interfaces"
	"github.com/dirmaster/dirmaster-backend/internal/infra/db"
	dbs "github.com/dirmaster/dirmaster-backend/pkg/db"
	"github.com/jackc/pgx/v5"
)

type OutboxConfig struct {
	Limit    uint8  `env:"SCHEDULER_LIMIT" envDefault:"5"`
	Interval uint16 `env:"SCHEDULER_INTERVAL" envDefault:"5"`
}

func NewOutboxConfig() *OutboxConfig {
	var cfg OutboxConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Error("error parsing scheduler config", "err", err)
	}
	return &cfg
}

// OutboxPoller drains the outbox table, dispatching each pending
// event to its processor. Rows are claimed with a row lock so two
// pollers never process the same event.
type OutboxPoller struct {
	processors *application.Processors
	uowFactory *dbs.UOWFactory
	cfg        *OutboxConfig
	stop       chan struct{}
}

func NewOutboxPoller(processors *application.Processors, uowFactory *dbs.UOWFactory, cfg *OutboxConfig) *OutboxPoller {
	return &OutboxPoller{processors: processors, uowFactory: uowFactory, cfg: cfg, stop: make(chan struct{})}
}

func (o *OutboxPoller) Start() {
	slog.Info("Starting outbox poller...")
	ctx, cancel := context.WithCancel(context.Background())
	t := time.NewTimer(time.Duration(o.cfg.Interval) * time.Second)
	for {
		select {
		case <-t.C:
			o.pollTable(ctx)
			t = time.NewTimer(time.Duration(o.cfg.Interval) * time.Second)
		case <-o.stop:
			cancel()
			return
		}
	}
}

func (o *OutboxPoller) Stop() {
	close(o.stop)
}

func (o *OutboxPoller) pollTable(ctx context.Context) {
	uow := o.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		slog.Error("error in poller", "err", err)
		return
	}

	query := "SELECT id, event, status, payload, created_at FROM dirmaster.outbox " +
		"WHERE status = $1 ORDER BY created_at FOR NO KEY UPDATE SKIP LOCKED LIMIT $2"
	rows, err := tx.Query(ctx, query, consts.NotProcessed, o.cfg.Limit)
	if err != nil {
		slog.Error("error in poller", "err", err)
		_ = uow.Rollback()
		return
	}

	var eventsToProcess []db.Outbox
	var eventIDs []int64
	for rows.Next() {
		var event db.Outbox
		if err = rows.Scan(&event.ID, &event.Event, &event.Status, &event.Payload, &event.CreatedAt); err != nil {
			slog.Error("error in poller", "err", err)
			continue
		}
		eventIDs = append(eventIDs, int64(event.ID))
		eventsToProcess = append(eventsToProcess, event)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		slog.Error("error reading result sets", "err", err)
	}

	if len(eventsToProcess) == 0 {
		_ = uow.Rollback()
		return
	}

	_, err = tx.Exec(ctx, "UPDATE dirmaster.outbox SET status = $1 WHERE id = ANY($2)", consts.Processing, eventIDs)
	if err != nil {
		slog.Error("error setting events status to processing", "err", err)
	}
	if err := uow.Commit(); err != nil {
		slog.Error("err committing", "err", err)
		return
	}

	var wg sync.WaitGroup
	for _, event := range eventsToProcess {
		wg.Add(1)
		go func(ev db.Outbox) {
			defer wg.Done()
			if err := o.handleEvent(ctx, ev); err != nil {
				slog.Error("handler error", "event", ev.ID, "err", err)
			}
		}(event)
	}
	wg.Wait()
}

func (o *OutboxPoller) handleEvent(ctx context.Context, outbox db.Outbox) error {
	var (
		uow    interfaces.UoW
		tx     pgx.Tx
		err    error
		status = consts.Processed
	)

	slog.Info("Handling event", "event", outbox.Event, "id", outbox.ID)

	switch outbox.Event {
	case events.EntryReceived{}.GetType():
		event := db.MapOutboxModelToEntryReceived(outbox)
		uow, err = o.processors.EntryReceived.Handle(ctx, event)
	case events.EntryPublished{}.GetType():
		event := db.MapOutboxModelToEntryPublished(outbox)
		uow, err = o.processors.EntryPublished.Handle(ctx, event)
	default:
		err = errors.New("unknown event type " + outbox.Event)
	}

	if err != nil {
		var retryable errs.RetryableError
		if errors.As(err, &retryable) {
			slog.Warn("transient handler error, will retry later", "event", outbox.Event, "id", outbox.ID, "err", err)
			status = consts.NotProcessed
		} else {
			status = consts.InError
			slog.Error("error in handler", "event", outbox.Event, "id", outbox.ID, "err", err)
		}
	}

	if uow == nil {
		var errTx error
		// open new transaction if there was none in event handler
		uow = o.uowFactory.GetUoW()
		tx, errTx = uow.Begin()
		if errTx != nil {
			return errors.Join(err, errTx)
		}
	} else {
		tx = uow.GetTx()
	}

	_, updateErr := tx.Exec(ctx, "UPDATE dirmaster.outbox SET status = $1 WHERE id = $2", status, outbox.ID)
	if updateErr != nil {
		errRollback := uow.Rollback()
		slog.Error("error in poller", "err", updateErr)
		return errors.Join(err, updateErr, errRollback)
	}
	if commitErr := uow.Commit(); commitErr != nil {
		slog.Error("error in poller", "err", commitErr)
		return errors.Join(err, commitErr)
	}
	return err
}
