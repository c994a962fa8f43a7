// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package feed blends a fixed default catalog with user-generated recipes
// into a bounded, ordered feed.
package feed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

// Policy holds the similarity weights and displacement threshold. The
// defaults match the heuristic the feed was tuned with; they are injected
// rather than hardcoded so tests and experiments can vary them.
type Policy struct {
	// StepWordWeight scores each shared step word longer than three
	// characters.
	StepWordWeight float64

	// TagWeight scores each shared tag.
	TagWeight float64

	// DifficultyWeight is added when difficulties match.
	DifficultyWeight float64

	// TimeWeight is added when cook times are within TimeWindowMinutes.
	TimeWeight float64

	TimeWindowMinutes int

	// DisplacementThreshold is the maximum similarity under which a user
	// recipe displaces a default item.
	DisplacementThreshold float64
}

// DefaultPolicy returns the standard feed policy.
func DefaultPolicy() Policy {
	return Policy{
		StepWordWeight:        0.1,
		TagWeight:             0.3,
		DifficultyWeight:      0.2,
		TimeWeight:            0.2,
		TimeWindowMinutes:     10,
		DisplacementThreshold: 0.3,
	}
}

// NewEngine returns an Engine over store with the given policy.
func NewEngine(store *culinarydb.FeedStore, policy Policy) *Engine {
	return &Engine{
		store:  store,
		policy: policy,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec
	}
}

// Engine produces per-user feeds.
type Engine struct {
	store  *culinarydb.FeedStore
	policy Policy
	rnd    *rand.Rand
}

// Feed returns up to maxItems feed items for the user. A cached feed of
// sufficient length is returned with only isLiked flags refreshed;
// otherwise the feed is rebuilt and cached.
func (e *Engine) Feed(ctx context.Context, userID string, maxItems int) ([]culinarydb.FeedItem, error) {
	liked, err := e.store.LikedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	cache, err := e.store.Cache(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cache != nil && len(cache.Items) >= maxItems {
		items := make([]culinarydb.FeedItem, len(cache.Items))
		for i, item := range cache.Items {
			item.IsLiked = liked[item.ID]
			items[i] = item
		}
		return items, nil
	}

	items, err := e.rebuild(ctx, userID, maxItems, liked)
	if err != nil {
		return nil, err
	}
	if err := e.store.SaveCache(ctx, userID, culinarydb.FeedCache{
		Items:       items,
		LastUpdated: time.Now(),
		UserID:      userID,
	}); err != nil {
		return nil, err
	}
	return items, nil
}

// Refresh invalidates the user's cached feed and rebuilds it.
func (e *Engine) Refresh(ctx context.Context, userID string, maxItems int) ([]culinarydb.FeedItem, error) {
	if err := e.store.InvalidateCache(ctx, userID); err != nil {
		return nil, err
	}
	return e.Feed(ctx, userID, maxItems)
}

func (e *Engine) rebuild(ctx context.Context, userID string, maxItems int, liked map[string]bool) ([]culinarydb.FeedItem, error) {
	defaults := defaultItems(liked)
	userItems, err := e.store.UserItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(userItems) == 0 {
		n := min(maxItems, len(defaults))
		feed := append([]culinarydb.FeedItem(nil), defaults[:n]...)
		e.rnd.Shuffle(len(feed), func(i, j int) {
			feed[i], feed[j] = feed[j], feed[i]
		})
		return feed, nil
	}

	newestFirst := append([]culinarydb.FeedItem(nil), userItems...)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].CreatedAt.After(newestFirst[j].CreatedAt)
	})
	if len(newestFirst) > maxItems {
		newestFirst = newestFirst[:maxItems]
	}

	// A default consumed as a candidate, kept or displaced, never becomes
	// a candidate again within one rebuild.
	consumed := make(map[string]bool)
	displaced := make(map[string]bool)
	var admitted []culinarydb.FeedItem

	for _, userItem := range newestFirst {
		minSimilarity := 1.0
		candidate := -1
		for i, defaultItem := range defaults {
			if consumed[defaultItem.ID] {
				continue
			}
			maxSimilarity := 0.0
			for _, other := range userItems {
				sim := e.similarity(other.Recipe, defaultItem.Recipe, other.Tags, defaultItem.Tags)
				maxSimilarity = max(maxSimilarity, sim)
			}
			if maxSimilarity < minSimilarity {
				minSimilarity = maxSimilarity
				candidate = i
			}
		}
		if candidate < 0 {
			break
		}
		consumed[defaults[candidate].ID] = true
		if minSimilarity < e.policy.DisplacementThreshold {
			displaced[defaults[candidate].ID] = true
			userItem.IsLiked = liked[userItem.ID]
			admitted = append(admitted, userItem)
		}
	}

	var surviving []culinarydb.FeedItem
	for _, defaultItem := range defaults {
		if !displaced[defaultItem.ID] {
			surviving = append(surviving, defaultItem)
		}
	}
	e.rnd.Shuffle(len(surviving), func(i, j int) {
		surviving[i], surviving[j] = surviving[j], surviving[i]
	})

	feed := append(admitted, surviving...)
	if len(feed) > maxItems {
		feed = feed[:maxItems]
	}
	return feed, nil
}

// similarity is a weighted sum over shared step words, shared tags, matching
// difficulty, and close cook times, capped at 1.0.
func (e *Engine) similarity(a, b culinarydb.Recipe, tagsA, tagsB []string) float64 {
	similarity := 0.0

	stepsA := strings.ToLower(strings.Join(a.Steps, " "))
	stepsB := strings.ToLower(strings.Join(b.Steps, " "))
	for _, word := range strings.Fields(stepsA) {
		if len(word) > 3 && strings.Contains(stepsB, word) {
			similarity += e.policy.StepWordWeight
		}
	}

	for _, tag := range tagsA {
		for _, other := range tagsB {
			if tag == other {
				similarity += e.policy.TagWeight
				break
			}
		}
	}

	if a.Difficulty == b.Difficulty {
		similarity += e.policy.DifficultyWeight
	}
	diff := a.TimeMinutes - b.TimeMinutes
	if diff < 0 {
		diff = -diff
	}
	if diff <= e.policy.TimeWindowMinutes {
		similarity += e.policy.TimeWeight
	}

	return min(similarity, 1.0)
}

// ToggleLike flips the user's like on a feed item and patches the cached
// feed in place. It returns the new liked state.
func (e *Engine) ToggleLike(ctx context.Context, userID string, itemID string) (bool, error) {
	liked, err := e.store.LikedIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	nowLiked := !liked[itemID]
	if nowLiked {
		liked[itemID] = true
	} else {
		delete(liked, itemID)
	}
	if err := e.store.SaveLikedIDs(ctx, userID, liked); err != nil {
		return false, err
	}

	cache, err := e.store.Cache(ctx, userID)
	if err != nil {
		return false, err
	}
	if cache != nil {
		for i := range cache.Items {
			if cache.Items[i].ID == itemID {
				cache.Items[i].IsLiked = nowLiked
				if err := e.store.SaveCache(ctx, userID, *cache); err != nil {
					return false, err
				}
				break
			}
		}
	}
	return nowLiked, nil
}

// AddUserRecipe appends a generated recipe to the user's feed items,
// inferring tags and meal type when not provided.
func (e *Engine) AddUserRecipe(ctx context.Context, userID string, recipe culinarydb.Recipe, storyboard *culinarydb.Storyboard, videoURL string, voiceoverURL string, tags []string) (culinarydb.FeedItem, error) {
	if len(tags) == 0 {
		tags = InferTags(recipe)
	}
	item := culinarydb.FeedItem{
		ID:           "user_" + uuid.NewString(),
		Recipe:       recipe,
		Storyboard:   storyboard,
		VideoURL:     videoURL,
		VoiceoverURL: voiceoverURL,
		Tags:         tags,
		MealType:     InferMealType(recipe, tags),
		IsDefault:    false,
		CreatedAt:    time.Now(),
	}
	if err := e.store.AddUserItem(ctx, userID, item); err != nil {
		return culinarydb.FeedItem{}, fmt.Errorf("feed: adding user item: %w", err)
	}
	return item, nil
}

// InferMealType guesses the meal type from recipe text and tags.
func InferMealType(recipe culinarydb.Recipe, tags []string) culinarydb.MealType {
	allText := strings.ToLower(recipe.Title + " " + strings.Join(recipe.Steps, " ") + " " + strings.Join(tags, " "))

	switch {
	case containsAny(allText, "breakfast", "toast", "oat", "smoothie", "egg"):
		return culinarydb.MealTypeBreakfast
	case containsAny(allText, "lunch", "salad", "bowl", "sandwich"):
		return culinarydb.MealTypeLunch
	case containsAny(allText, "snack", "appetizer", "skewer"):
		return culinarydb.MealTypeSnack
	default:
		return culinarydb.MealTypeDinner
	}
}

// InferTags derives keyword tags from the recipe title and step text.
func InferTags(recipe culinarydb.Recipe) []string {
	var tags []string
	title := strings.ToLower(recipe.Title)
	steps := strings.ToLower(strings.Join(recipe.Steps, " "))

	if containsAny(title, "breakfast", "toast", "oat") {
		tags = append(tags, "breakfast")
	}
	if containsAny(title, "lunch", "salad", "bowl") {
		tags = append(tags, "lunch")
	}
	if containsAny(title, "dinner", "curry", "stir fry") {
		tags = append(tags, "dinner")
	}

	if containsAny(steps, "vegetable", "veggie") {
		tags = append(tags, "vegetables")
	}
	if containsAny(steps, "fruit", "berry") {
		tags = append(tags, "fruits")
	}
	if containsAny(steps, "spice", "chili", "curry") {
		tags = append(tags, "spices")
	}
	if strings.Contains(steps, "chicken") {
		tags = append(tags, "chicken")
	}
	if containsAny(steps, "salmon", "fish") {
		tags = append(tags, "seafood")
	}
	if !containsAny(steps, "meat", "chicken", "fish") {
		tags = append(tags, "vegetarian")
	}

	if recipe.TimeMinutes <= 15 {
		tags = append(tags, "quick")
	}
	if recipe.Difficulty == culinarydb.DifficultyEasy {
		tags = append(tags, "easy")
	}
	if containsAny(steps, "healthy", "fresh") {
		tags = append(tags, "healthy")
	}

	if len(tags) == 0 {
		tags = []string{"recipe"}
	}
	return tags
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
