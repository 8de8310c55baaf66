// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenStampsSession(t *testing.T) {
	store := newTestStore(t)

	_, err := uuid.Parse(store.SessionID())
	require.NoError(t, err, "session id must be a valid UUID")
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	deck := filepath.Join(t.TempDir(), "deck.toml")

	err := store.Save(ctx, View{
		DeckPath:   deck,
		SlideIndex: 3,
		NavActive:  "docs",
		NavDeploy:  []string{"products", "nested"},
	})
	require.NoError(t, err)

	view, err := store.Load(ctx, deck)
	require.NoError(t, err)

	abs, err := filepath.Abs(deck)
	require.NoError(t, err)
	assert.Equal(t, abs, view.DeckPath)
	assert.Equal(t, 3, view.SlideIndex)
	assert.Equal(t, "docs", view.NavActive)
	assert.Equal(t, []string{"products", "nested"}, view.NavDeploy)
	assert.Equal(t, store.SessionID(), view.SessionID)
	assert.WithinDuration(t, time.Now(), view.SavedAt, 5*time.Second)
}

func TestLoadMissingDeck(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), "/nowhere/deck.toml")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	deck := filepath.Join(t.TempDir(), "deck.toml")

	require.NoError(t, store.Save(ctx, View{DeckPath: deck, SlideIndex: 1}))
	require.NoError(t, store.Save(ctx, View{DeckPath: deck, SlideIndex: 7}))

	view, err := store.Load(ctx, deck)
	require.NoError(t, err)
	assert.Equal(t, 7, view.SlideIndex)

	views, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, views, 1, "upsert must not grow the table")
}

func TestEmptyDeployRoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	deck := filepath.Join(t.TempDir(), "deck.toml")

	require.NoError(t, store.Save(ctx, View{DeckPath: deck}))

	view, err := store.Load(ctx, deck)
	require.NoError(t, err)
	assert.Nil(t, view.NavDeploy)
	assert.Empty(t, view.NavActive)
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, store.Save(ctx, View{DeckPath: first, SlideIndex: 1}))
	time.Sleep(2 * time.Millisecond) // keep saved_at strictly ordered on coarse clocks
	require.NoError(t, store.Save(ctx, View{DeckPath: second, SlideIndex: 2}))

	views, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, views, 2)

	absSecond, _ := filepath.Abs(second)
	assert.Equal(t, absSecond, views[0].DeckPath, "latest save comes first")

	views, err = store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	deck := "/some/deck.toml"

	store, err := Open(path)
	require.NoError(t, err)
	firstSession := store.SessionID()
	require.NoError(t, store.Save(ctx, View{DeckPath: deck, SlideIndex: 4}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.NotEqual(t, firstSession, store.SessionID(), "each run gets its own session id")

	view, err := store.Load(ctx, deck)
	require.NoError(t, err)
	assert.Equal(t, 4, view.SlideIndex)
	assert.Equal(t, firstSession, view.SessionID, "row keeps the writing session's id")
}
