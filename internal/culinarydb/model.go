// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package culinarydb

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Recipe is a single recipe proposed for a set of detected ingredients.
type Recipe struct {
	// Title is the title of the recipe, short and catchy.
	Title string `json:"title"`

	// TimeMinutes is the estimated preparation time in minutes.
	TimeMinutes int `json:"time_minutes"`

	// Difficulty is the difficulty of the recipe.
	Difficulty Difficulty `json:"difficulty"`

	// Steps are short imperative preparation steps, in order.
	Steps []string `json:"steps"`

	// MissingItems are optional extra ingredients not detected in the image.
	MissingItems []string `json:"missing_items"`
}

// Storyboard describes a short vertical video for a recipe.
type Storyboard struct {
	// Hook is a one-sentence attention grabber.
	Hook string `json:"hook"`

	// VoiceoverScript is the narration script for the video.
	VoiceoverScript string `json:"voiceover_script"`

	// VideoDescription describes the visual content of the video.
	VideoDescription string `json:"video_description"`

	// Caption is the main on-screen text shown during the video.
	Caption string `json:"caption"`
}

// CulinaryPlan is the result of analyzing one uploaded ingredient photo,
// populated in place as pipeline stages complete. The per-index maps are
// keyed by position in Recipes and may have holes where generation failed
// for a recipe; absence means the optional asset is simply not available.
type CulinaryPlan struct {
	// Ingredients are the detected ingredient names, lowercase and singular.
	Ingredients []string `json:"ingredients"`

	// Recipes are the proposed recipes, in presentation order.
	Recipes []Recipe `json:"recipes"`

	// Storyboard is the storyboard for the first recipe, produced together
	// with the plan.
	Storyboard *Storyboard `json:"storyboard,omitempty"`

	// RecipeStoryboards maps recipe index to its storyboard.
	RecipeStoryboards map[int]*Storyboard `json:"recipeStoryboards,omitempty"`

	// RecipeVideos maps recipe index to generated video URLs.
	RecipeVideos map[int][]string `json:"recipeVideos,omitempty"`

	// RecipeVoiceovers maps recipe index to a narration audio URL.
	RecipeVoiceovers map[int]string `json:"recipeVoiceovers,omitempty"`
}

// FeedItem is a single entry in the recipe feed.
type FeedItem struct {
	// ID is the unique identifier of the item, stable across cache rebuilds.
	ID string `json:"id"`

	// Recipe is the recipe shown by the item.
	Recipe Recipe `json:"recipe"`

	// Storyboard is the storyboard for the item's video, if any.
	Storyboard *Storyboard `json:"storyboard,omitempty"`

	// VideoURL is the URL of the item's video, if any.
	VideoURL string `json:"videoUrl,omitempty"`

	// VoiceoverURL is the URL of the item's narration audio, if any.
	VoiceoverURL string `json:"voiceoverUrl,omitempty"`

	// Tags are lowercase keyword tags for the item.
	Tags []string `json:"tags"`

	// MealType is the meal the recipe fits.
	MealType MealType `json:"mealType"`

	// IsDefault indicates the item comes from the default catalog rather
	// than a user generation. Provenance, never changes.
	IsDefault bool `json:"isDefault"`

	// IsLiked indicates the viewing user has liked the item.
	IsLiked bool `json:"isLiked"`

	// Likes is the display like counter.
	Likes int `json:"likes"`

	// CreatedAt is the time the item was created.
	CreatedAt time.Time `json:"createdAt"`
}

// FeedCache is a cached ordered feed for a user.
type FeedCache struct {
	// Items are the cached feed items, in display order.
	Items []FeedItem `json:"items"`

	// LastUpdated is the time the cache was built.
	LastUpdated time.Time `json:"lastUpdated"`

	// UserID is the viewing user the cache was built for.
	UserID string `json:"userId,omitempty"`
}

// FavoriteRecipe is a recipe saved by a user. The identity key of a
// favorite is the recipe title together with the ingredient sequence that
// produced it; saving a favorite with a colliding key overwrites the prior
// entry.
type FavoriteRecipe struct {
	// ID is the unique identifier of the favorite.
	ID string `json:"id"`

	// Recipe is the saved recipe.
	Recipe Recipe `json:"recipe"`

	// Storyboard is the storyboard generated for the recipe, if any.
	Storyboard *Storyboard `json:"storyboard,omitempty"`

	// VideoURLs are the video URLs generated for the recipe, if any.
	VideoURLs []string `json:"videoUrls,omitempty"`

	// VoiceoverURL is the narration audio URL for the recipe, if any.
	VoiceoverURL string `json:"voiceoverUrl,omitempty"`

	// Ingredients is the detected ingredient set the recipe was generated
	// from. Part of the identity key of the favorite.
	Ingredients []string `json:"ingredients"`

	// CreatedAt is the time the favorite was saved.
	CreatedAt time.Time `json:"createdAt"`
}

// User is a user profile.
type User struct {
	// ID is the unique identifier of the user.
	ID string `json:"id"`

	// Email is the email address of the user.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// CreatedAt is the time the profile was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Session is an opaque session for a signed-in user.
type Session struct {
	// Token is the opaque session token.
	Token string `json:"token"`

	// UserID is the user the session belongs to.
	UserID string `json:"userId"`

	// CreatedAt is the time the session was created.
	CreatedAt time.Time `json:"createdAt"`
}
