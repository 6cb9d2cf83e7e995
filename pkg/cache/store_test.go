package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/gitar-cli/gitar/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	store := cache.New(t.TempDir(), nil)
	key := cache.Key("GET", "https://gitlab.com/api/v4/projects/1", nil, "user:1")

	entry := &cache.Entry{Status: 200, Body: []byte("payload"), StoredAt: 1000, TTLCategory: "project"}
	require.NoError(t, store.Put("gitlab.com", "project", key, entry))

	got := store.Get("gitlab.com", "project", key)
	require.NotNil(t, got)
	assert.Equal(t, []byte("payload"), got.Body)
	assert.Equal(t, 200, got.Status)
}

func TestStoreGetMissingReturnsNil(t *testing.T) {
	store := cache.New(t.TempDir(), nil)
	assert.Nil(t, store.Get("gitlab.com", "project", "nonexistent"))
}

func TestDisabledStoreIsAlwaysMiss(t *testing.T) {
	store := cache.Disabled()
	assert.False(t, store.Enabled())
	assert.Nil(t, store.Get("gitlab.com", "project", "any"))
	assert.NoError(t, store.Put("gitlab.com", "project", "any", &cache.Entry{}))
	assert.NoError(t, store.Wipe(""))
}

func TestStoreTouchUpdatesStoredAt(t *testing.T) {
	store := cache.New(t.TempDir(), nil)
	key := cache.Key("GET", "https://gitlab.com/api/v4/projects/1", nil, "user:1")
	entry := &cache.Entry{Status: 200, Body: []byte("payload"), StoredAt: 1000}
	require.NoError(t, store.Put("gitlab.com", "project", key, entry))

	require.NoError(t, store.Touch("gitlab.com", "project", key, entry, 2000))

	got := store.Get("gitlab.com", "project", key)
	require.NotNil(t, got)
	assert.Equal(t, int64(2000), got.StoredAt)
}

func TestStoreWipeRemovesDomain(t *testing.T) {
	dir := t.TempDir()
	store := cache.New(dir, nil)
	key := cache.Key("GET", "https://gitlab.com/api/v4/projects/1", nil, "user:1")
	require.NoError(t, store.Put("gitlab.com", "project", key, &cache.Entry{Status: 200}))

	require.NoError(t, store.Wipe("gitlab.com"))

	assert.Nil(t, store.Get("gitlab.com", "project", key))
	assert.NoDirExists(t, filepath.Join(dir, "gitlab.com"))
}
