package errs

import (
	"fmt"

	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
)

type ValidationError struct {
	Msg string
}

func (t ValidationError) Error() string {
	return t.Msg
}

type NotFoundError struct {
	Resource string
}

func (t NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", t.Resource)
}

type PermissionsError struct {
	Err error
}

func (t PermissionsError) Error() string {
	return fmt.Sprintf("error in permissions: %v", t.Err)
}

// RetryableError marks a processor failure as transient; the outbox
// poller leaves the event unprocessed and picks it up again.
type RetryableError struct {
	Err error
}

func (t RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", t.Err)
}

type InvalidTransitionError struct {
	From consts.EntryStatus
	To   consts.EntryStatus
}

func (t InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", t.From, t.To)
}
