// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package feed

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

func newTestEngine(t *testing.T) (*Engine, *culinarydb.FeedStore) {
	t.Helper()
	db, err := culinarydb.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	store := culinarydb.NewFeedStore(culinarydb.NewStore(db))
	return NewEngine(store, DefaultPolicy()), store
}

// dissimilarRecipe shares no step words, tags, difficulty, or time window
// with any catalog entry.
func dissimilarRecipe() culinarydb.Recipe {
	return culinarydb.Recipe{
		Title:       "Fermented Yak Butter Broth",
		TimeMinutes: 120,
		Difficulty:  culinarydb.DifficultyHard,
		Steps:       []string{"xylo qwert zzyzx", "plugh wombat fjord"},
	}
}

func feedIDs(items []culinarydb.FeedItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestFeedDefaultsOnly(t *testing.T) {
	engine, _ := newTestEngine(t)

	items, err := engine.Feed(t.Context(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, items, 10)
	for _, item := range items {
		assert.True(t, item.IsDefault)
		assert.NotEmpty(t, item.VideoURL)
		assert.GreaterOrEqual(t, item.Likes, 10)
	}
}

func TestFeedCacheIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := t.Context()

	first, err := engine.Feed(ctx, "u1", 10)
	require.NoError(t, err)
	second, err := engine.Feed(ctx, "u1", 10)
	require.NoError(t, err)

	assert.Equal(t, feedIDs(first), feedIDs(second))
}

func TestFeedDisplacesDissimilarDefault(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := t.Context()

	item, err := engine.AddUserRecipe(ctx, "u1", dissimilarRecipe(), nil, "", "", []string{"fermented", "broth"})
	require.NoError(t, err)

	items, err := engine.Feed(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, items, 10)

	ids := feedIDs(items)
	assert.Contains(t, ids, item.ID)
	// All similarities are zero, so the first-evaluated default is the
	// displacement candidate.
	assert.NotContains(t, ids, "default_0")
	// Admitted user recipes lead the feed.
	assert.Equal(t, item.ID, ids[0])
}

func TestFeedKeepsDefaultsForSimilarRecipe(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := t.Context()

	// Near-clone of the avocado toast catalog entry; every default is
	// within the displacement threshold of it somewhere, but the closest
	// match keeps the candidate above threshold.
	clone := culinarydb.Recipe{
		Title:       "Classic Avocado Toast",
		TimeMinutes: 5,
		Difficulty:  culinarydb.DifficultyEasy,
		Steps: []string{
			"Toast whole grain bread until golden",
			"Mash ripe avocado with lemon juice",
		},
	}
	item, err := engine.AddUserRecipe(ctx, "u1", clone, nil, "", "", []string{"breakfast", "avocado", "quick", "healthy", "vegetarian"})
	require.NoError(t, err)

	items, err := engine.Feed(ctx, "u1", 10)
	require.NoError(t, err)

	// Candidate similarity is far above threshold, so the user recipe is
	// dropped and the feed stays all defaults.
	assert.NotContains(t, feedIDs(items), item.ID)
	assert.Len(t, items, 10)
}

func TestRefreshPicksUpNewRecipes(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := t.Context()

	_, err := engine.Feed(ctx, "u1", 10)
	require.NoError(t, err)

	item, err := engine.AddUserRecipe(ctx, "u1", dissimilarRecipe(), nil, "", "", nil)
	require.NoError(t, err)

	// Cached feed does not include the new recipe until refresh.
	cached, err := engine.Feed(ctx, "u1", 10)
	require.NoError(t, err)
	assert.NotContains(t, feedIDs(cached), item.ID)

	refreshed, err := engine.Refresh(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Contains(t, feedIDs(refreshed), item.ID)
}

func TestToggleLike(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := t.Context()

	items, err := engine.Feed(ctx, "u1", 10)
	require.NoError(t, err)
	target := items[0].ID

	liked, err := engine.ToggleLike(ctx, "u1", target)
	require.NoError(t, err)
	assert.True(t, liked)

	// The cached feed is patched in place.
	cache, err := store.Cache(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, cache)
	for _, item := range cache.Items {
		if item.ID == target {
			assert.True(t, item.IsLiked)
		}
	}

	liked, err = engine.ToggleLike(ctx, "u1", target)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestAddUserRecipeInfersTagsAndMealType(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := t.Context()

	item, err := engine.AddUserRecipe(ctx, "u1", culinarydb.Recipe{
		Title:       "Sunrise Oat Bowl",
		TimeMinutes: 10,
		Difficulty:  culinarydb.DifficultyEasy,
		Steps:       []string{"Mix oats with fresh fruit", "Top with berry compote"},
	}, nil, "", "", nil)
	require.NoError(t, err)

	assert.Equal(t, culinarydb.MealTypeBreakfast, item.MealType)
	assert.Contains(t, item.Tags, "breakfast")
	assert.Contains(t, item.Tags, "fruits")
	assert.Contains(t, item.Tags, "quick")
	assert.Contains(t, item.Tags, "vegetarian")

	stored, err := store.UserItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, item.ID, stored[0].ID)
	assert.False(t, stored[0].CreatedAt.IsZero())
}

func TestInferMealType(t *testing.T) {
	tests := []struct {
		title string
		want  culinarydb.MealType
	}{
		{"Veggie Scramble with Egg", culinarydb.MealTypeBreakfast},
		{"Crunchy Kale Salad", culinarydb.MealTypeLunch},
		{"Party Appetizer Platter", culinarydb.MealTypeSnack},
		{"Braised Short Ribs", culinarydb.MealTypeDinner},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := InferMealType(culinarydb.Recipe{Title: tt.title}, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}
