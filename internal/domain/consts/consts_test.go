package consts_test

import (
	"testing"

	"github.com/dirmaster/dirmaster-backend/internal/domain/consts"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]consts.EntryStatus{
		{consts.EntryStatusDraft, consts.EntryStatusPublished},
		{consts.EntryStatusPublished, consts.EntryStatusDraft},
		{consts.EntryStatusPublished, consts.EntryStatusArchived},
		{consts.EntryStatusArchived, consts.EntryStatusPublished},
		{consts.EntryStatusPending, consts.EntryStatusPublished},
		{consts.EntryStatusPending, consts.EntryStatusRejected},
	}
	for _, pair := range allowed {
		require.True(t, consts.CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]consts.EntryStatus{
		{consts.EntryStatusDraft, consts.EntryStatusArchived},
		{consts.EntryStatusDraft, consts.EntryStatusPending},
		{consts.EntryStatusArchived, consts.EntryStatusDraft},
		{consts.EntryStatusRejected, consts.EntryStatusPublished},
		{consts.EntryStatusRejected, consts.EntryStatusPending},
		{consts.EntryStatusPublished, consts.EntryStatusPending},
	}
	for _, pair := range denied {
		require.False(t, consts.CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestSameStatusIsAlwaysAllowed(t *testing.T) {
	for _, s := range []consts.EntryStatus{
		consts.EntryStatusDraft,
		consts.EntryStatusPending,
		consts.EntryStatusPublished,
		consts.EntryStatusArchived,
		consts.EntryStatusRejected,
	} {
		require.True(t, consts.CanTransition(s, s))
	}
}

func TestValidEntryStatus(t *testing.T) {
	require.True(t, consts.ValidEntryStatus("draft"))
	require.True(t, consts.ValidEntryStatus("pending"))
	require.False(t, consts.ValidEntryStatus("approved"))
	require.False(t, consts.ValidEntryStatus(""))
}
