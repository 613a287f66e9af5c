package consts

type EntryStatus string

const EntryStatusDraft EntryStatus = "draft"
const EntryStatusPending EntryStatus = "pending"
const EntryStatusPublished EntryStatus = "published"
const EntryStatusArchived EntryStatus = "archived"
const EntryStatusRejected EntryStatus = "rejected"

var entryStatuses = map[EntryStatus]struct{}{
	EntryStatusDraft:     {},
	EntryStatusPending:   {},
	EntryStatusPublished: {},
	EntryStatusArchived:  {},
	EntryStatusRejected:  {},
}

// allowedTransitions is the entry lifecycle: drafts and published
// entries can move back and forth, published entries can be archived
// and restored, pending submissions are either published or rejected.
var allowedTransitions = map[EntryStatus][]EntryStatus{
	EntryStatusDraft:     {EntryStatusPublished},
	EntryStatusPublished: {EntryStatusDraft, EntryStatusArchived},
	EntryStatusArchived:  {EntryStatusPublished},
	EntryStatusPending:   {EntryStatusPublished, EntryStatusRejected},
}

func ValidEntryStatus(s string) bool {
	_, ok := entryStatuses[EntryStatus(s)]
	return ok
}

func CanTransition(from, to EntryStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
