package storage

import (
	"context"
	"testing"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRecentlyViewed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		require.NoError(t, RecordRecentlyViewed(ctx, store, enums.RecentPlayers, id))
	}
	ids, err := RecentlyViewed(ctx, store, enums.RecentPlayers)
	require.NoError(t, err)
	assert.Equal(t, []string{"p6", "p5", "p4", "p3", "p2"}, ids)

	// Revisiting moves to the front without duplicating.
	require.NoError(t, RecordRecentlyViewed(ctx, store, enums.RecentPlayers, "p4"))
	ids, _ = RecentlyViewed(ctx, store, enums.RecentPlayers)
	assert.Equal(t, []string{"p4", "p6", "p5", "p3", "p2"}, ids)

	// Kinds are independent.
	coaches, err := RecentlyViewed(ctx, store, enums.RecentCoaches)
	require.NoError(t, err)
	assert.Empty(t, coaches)

	raw, err := store.Get(ctx, "recentlyViewedPlayers")
	require.NoError(t, err)
	assert.Equal(t, `["p4","p6","p5","p3","p2"]`, raw)
}

func TestRecentlyViewedCorruptList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, RecentlyViewedKey(enums.RecentParents), "not json"))

	ids, err := RecentlyViewed(ctx, store, enums.RecentParents)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, RecordRecentlyViewed(ctx, store, enums.RecentParents, "x"))
	ids, _ = RecentlyViewed(ctx, store, enums.RecentParents)
	assert.Equal(t, []string{"x"}, ids)
}

func TestDismissNotification(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, DismissNotification(ctx, store, "n1"))
	require.NoError(t, DismissNotification(ctx, store, "n2"))
	require.NoError(t, DismissNotification(ctx, store, "n1"))

	ids, err := DismissedNotifications(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2"}, ids)
}

func TestSaveLoadParent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := LoadParent(ctx, store)
	assert.ErrorIs(t, err, ErrNotFound)

	parent := &models.Parent{ID: "p-1", FullName: "Pat Doe", Email: "pat@example.com", Players: []string{"k1"}}
	require.NoError(t, SaveParent(ctx, store, parent))

	id, err := store.Get(ctx, KeyParentID)
	require.NoError(t, err)
	assert.Equal(t, "p-1", id)

	loaded, err := LoadParent(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, parent, loaded)
}
