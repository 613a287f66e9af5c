package cache_test

import (
	"testing"

	"github.com/dirmaster/dirmaster-backend/internal/infra/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestKeysAreDeterministic(t *testing.T) {
	projectID := uuid.New()
	require.Equal(t, cache.ProjectKey(projectID), cache.ProjectKey(projectID))
	require.Equal(t, cache.EntriesKey(projectID), cache.EntriesKey(projectID))
	require.Equal(t, cache.EntryKey(projectID, "acme"), cache.EntryKey(projectID, "acme"))
}

func TestKeysDifferPerInput(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	require.NotEqual(t, cache.ProjectKey(a), cache.ProjectKey(b))
	require.NotEqual(t, cache.EntriesKey(a), cache.EntriesKey(b))
	require.NotEqual(t, cache.EntryKey(a, "acme"), cache.EntryKey(b, "acme"))
	require.NotEqual(t, cache.EntryKey(a, "acme"), cache.EntryKey(a, "acme-2"))
}

func TestKeyShapesNeverCollide(t *testing.T) {
	projectID := uuid.New()
	keys := map[string]struct{}{
		cache.ProjectKey(projectID):        {},
		cache.EntriesKey(projectID):        {},
		cache.EntryKey(projectID, "acme"):  {},
		cache.EntryKey(projectID, "other"): {},
	}
	require.Len(t, keys, 4)
}

func TestKeyNamespacePrefix(t *testing.T) {
	projectID := uuid.New()
	require.Equal(t, "dm:project:"+projectID.String(), cache.ProjectKey(projectID))
	require.Equal(t, "dm:entries:"+projectID.String(), cache.EntriesKey(projectID))
	require.Equal(t, "dm:entry:"+projectID.String()+":acme", cache.EntryKey(projectID, "acme"))
}
