package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// All keys are namespaced under "dm:". Identifiers are server-generated
// UUIDs and validated slugs, so the ":" separator cannot occur inside a
// key segment.
const keyPrefix = "dm"

func ProjectKey(projectID uuid.UUID) string {
	return fmt.Sprintf("%s:project:%s", keyPrefix, projectID)
}

func EntriesKey(projectID uuid.UUID) string {
	return fmt.Sprintf("%s:entries:%s", keyPrefix, projectID)
}

func EntryKey(projectID uuid.UUID, entrySlug string) string {
	return fmt.Sprintf("%s:entry:%s:%s", keyPrefix, projectID, entrySlug)
}
