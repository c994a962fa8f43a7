// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package culinarydb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewStore(db)
}

func testRecipe(title string) Recipe {
	return Recipe{
		Title:       title,
		TimeMinutes: 15,
		Difficulty:  DifficultyEasy,
		Steps:       []string{"Chop everything", "Cook it", "Serve hot"},
	}
}

func TestFavoritesOverwriteOnSameKey(t *testing.T) {
	favorites := NewFavoriteStore(newTestStore(t))
	ctx := t.Context()

	first, err := favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:      testRecipe("Veggie Stir Fry"),
		Ingredients: []string{"broccoli", "carrot"},
	})
	require.NoError(t, err)

	second, err := favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:       testRecipe("Veggie Stir Fry"),
		Ingredients:  []string{"broccoli", "carrot"},
		VoiceoverURL: "/media/voiceovers/a.mp3",
	})
	require.NoError(t, err)

	all, err := favorites.Favorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, "/media/voiceovers/a.mp3", all[0].VoiceoverURL)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestFavoritesDistinctKeys(t *testing.T) {
	favorites := NewFavoriteStore(newTestStore(t))
	ctx := t.Context()

	_, err := favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:      testRecipe("Veggie Stir Fry"),
		Ingredients: []string{"broccoli"},
	})
	require.NoError(t, err)
	// Same title, different ingredients is a different favorite.
	_, err = favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:      testRecipe("Veggie Stir Fry"),
		Ingredients: []string{"broccoli", "tofu"},
	})
	require.NoError(t, err)

	all, err := favorites.Favorites(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFavoritesRemoveByID(t *testing.T) {
	favorites := NewFavoriteStore(newTestStore(t))
	ctx := t.Context()

	fav, err := favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:      testRecipe("Lemon Pasta"),
		Ingredients: []string{"pasta", "lemon"},
	})
	require.NoError(t, err)

	removed, err := favorites.RemoveByID(ctx, "u1", fav.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = favorites.RemoveByID(ctx, "u1", fav.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	all, err := favorites.Favorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFavoritesIsFavorite(t *testing.T) {
	favorites := NewFavoriteStore(newTestStore(t))
	ctx := t.Context()

	_, err := favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:      testRecipe("Lemon Pasta"),
		Ingredients: []string{"pasta", "lemon"},
	})
	require.NoError(t, err)

	ok, err := favorites.IsFavorite(ctx, "u1", "Lemon Pasta", []string{"pasta", "lemon"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = favorites.IsFavorite(ctx, "u1", "Lemon Pasta", []string{"pasta"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavoritesScopedPerUser(t *testing.T) {
	favorites := NewFavoriteStore(newTestStore(t))
	ctx := t.Context()

	_, err := favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:      testRecipe("Lemon Pasta"),
		Ingredients: []string{"pasta"},
	})
	require.NoError(t, err)

	other, err := favorites.Favorites(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTimestampsSurviveRoundTrip(t *testing.T) {
	favorites := NewFavoriteStore(newTestStore(t))
	ctx := t.Context()

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	_, err := favorites.Put(ctx, "u1", FavoriteRecipe{
		Recipe:      testRecipe("Lemon Pasta"),
		Ingredients: []string{"pasta"},
		CreatedAt:   created,
	})
	require.NoError(t, err)

	all, err := favorites.Favorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, created.Equal(all[0].CreatedAt))
}

func TestFeedStoreCacheLifecycle(t *testing.T) {
	feedStore := NewFeedStore(newTestStore(t))
	ctx := t.Context()

	cache, err := feedStore.Cache(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cache)

	item := FeedItem{
		ID:        "user_1",
		Recipe:    testRecipe("Veggie Stir Fry"),
		Tags:      []string{"quick"},
		MealType:  MealTypeDinner,
		CreatedAt: time.Now(),
	}
	require.NoError(t, feedStore.SaveCache(ctx, "u1", FeedCache{
		Items:       []FeedItem{item},
		LastUpdated: time.Now(),
		UserID:      "u1",
	}))

	cache, err = feedStore.Cache(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, cache)
	require.Len(t, cache.Items, 1)
	assert.Equal(t, "user_1", cache.Items[0].ID)

	require.NoError(t, feedStore.InvalidateCache(ctx, "u1"))
	cache, err = feedStore.Cache(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestFeedStoreLikedIDs(t *testing.T) {
	feedStore := NewFeedStore(newTestStore(t))
	ctx := t.Context()

	liked, err := feedStore.LikedIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, liked)

	require.NoError(t, feedStore.SaveLikedIDs(ctx, "u1", map[string]bool{"default_1": true, "default_2": false}))

	liked, err = feedStore.LikedIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"default_1": true}, liked)
}
