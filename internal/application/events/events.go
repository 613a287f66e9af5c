package events

import (
	"github.com/google/uuid"
)

// EntryReceived is emitted when the public submission endpoint accepts
// a new pending entry. A consumer notifies the project owner; delivery
// is best-effort.
type EntryReceived struct {
	ProjectID uuid.UUID              `json:"projectId"`
	EntryID   uuid.UUID              `json:"entryId"`
	Data      map[string]interface{} `json:"data"`
}

func (e EntryReceived) GetType() string {
	return "entry/received"
}

// EntryPublished is emitted when an entry transitions into the
// published state. The consumer drops the entry's cache keys.
type EntryPublished struct {
	ProjectID uuid.UUID `json:"projectId"`
	EntrySlug string    `json:"entrySlug"`
}

func (e EntryPublished) GetType() string {
	return "entry/published"
}
