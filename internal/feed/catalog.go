// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package feed

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

// Placeholder videos for catalog entries.
var defaultVideos = []string{
	"https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4",
	"https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4",
	"https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerMeltdowns.mp4",
	"https://storage.googleapis.com/gtv-videos-bucket/sample/SubaruOutbackOnStreetAndDirt.mp4",
	"https://storage.googleapis.com/gtv-videos-bucket/sample/TearsOfSteel.mp4",
	"https://storage.googleapis.com/gtv-videos-bucket/sample/WeAreGoingOnBullrun.mp4",
	"https://storage.googleapis.com/gtv-videos-bucket/sample/WhatCarCanYouGetForAGrand.mp4",
	"https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
}

type catalogEntry struct {
	recipe     culinarydb.Recipe
	storyboard culinarydb.Storyboard
	tags       []string
	mealType   culinarydb.MealType
}

// Ten default recipes covering a wide range of ingredients and meal types.
var catalog = []catalogEntry{
	{
		recipe: culinarydb.Recipe{
			Title:       "Classic Avocado Toast",
			TimeMinutes: 5,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Toast whole grain bread until golden",
				"Mash ripe avocado with lemon juice",
				"Season with salt and pepper",
				"Spread on toast and top with cherry tomatoes",
				"Add a drizzle of olive oil",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Start your day right with this simple breakfast!",
			VoiceoverScript:  "Perfect avocado toast in just five minutes. Creamy, fresh, and delicious.",
			VideoDescription: "Close-up of toasting bread, mashing avocado, spreading on toast, and adding toppings",
			Caption:          "5-Min Avocado Toast",
		},
		tags:     []string{"breakfast", "vegetarian", "healthy", "quick", "avocado", "bread"},
		mealType: culinarydb.MealTypeBreakfast,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Mediterranean Quinoa Bowl",
			TimeMinutes: 20,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Cook quinoa according to package",
				"Dice cucumbers and tomatoes",
				"Add feta cheese and olives",
				"Drizzle with olive oil and lemon",
				"Toss with fresh herbs",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Fresh and healthy Mediterranean flavors!",
			VoiceoverScript:  "Colorful quinoa bowl with fresh vegetables and tangy feta. Light and satisfying.",
			VideoDescription: "Cooking quinoa, chopping vegetables, assembling bowl with vibrant ingredients",
			Caption:          "Mediterranean Quinoa",
		},
		tags:     []string{"lunch", "vegetarian", "healthy", "mediterranean", "quinoa", "vegetables"},
		mealType: culinarydb.MealTypeLunch,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Spicy Thai Basil Stir Fry",
			TimeMinutes: 15,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Heat oil in a wok",
				"Add garlic and chili",
				"Stir fry vegetables quickly",
				"Add soy sauce and basil",
				"Serve over rice",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Bursting with Thai flavors in minutes!",
			VoiceoverScript:  "Fiery stir fry with fresh basil and crisp vegetables. Fast and flavorful.",
			VideoDescription: "Sizzling wok with vegetables, adding sauce, tossing with basil leaves",
			Caption:          "Thai Basil Stir Fry",
		},
		tags:     []string{"dinner", "asian", "spicy", "vegetables", "quick", "thai"},
		mealType: culinarydb.MealTypeDinner,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Berry Smoothie Bowl",
			TimeMinutes: 10,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Blend frozen berries with banana",
				"Add yogurt until smooth",
				"Pour into bowl",
				"Top with granola and fresh berries",
				"Drizzle with honey",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Cool and refreshing breakfast bowl!",
			VoiceoverScript:  "Creamy smoothie bowl packed with berries and topped with crunchy granola.",
			VideoDescription: "Blending fruits, pouring into bowl, adding colorful toppings",
			Caption:          "Berry Smoothie Bowl",
		},
		tags:     []string{"breakfast", "healthy", "fruits", "smoothie", "quick", "berries"},
		mealType: culinarydb.MealTypeBreakfast,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Herb-Crusted Salmon",
			TimeMinutes: 25,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Preheat oven to 400°F",
				"Mix herbs with breadcrumbs",
				"Press onto salmon fillets",
				"Bake until flaky",
				"Serve with lemon wedges",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Elegant salmon dinner made simple!",
			VoiceoverScript:  "Crispy herb crust on tender salmon. Restaurant quality at home.",
			VideoDescription: "Coating salmon with herbs, baking in oven, golden crust forming",
			Caption:          "Herb-Crusted Salmon",
		},
		tags:     []string{"dinner", "seafood", "healthy", "herbs", "salmon", "elegant"},
		mealType: culinarydb.MealTypeDinner,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Caprese Salad Skewers",
			TimeMinutes: 10,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Thread cherry tomatoes on skewers",
				"Add fresh mozzarella balls",
				"Tuck in basil leaves",
				"Drizzle with balsamic",
				"Season with salt and pepper",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Perfect party appetizer in minutes!",
			VoiceoverScript:  "Fresh caprese skewers with mozzarella, tomatoes, and basil. Simple elegance.",
			VideoDescription: "Threading ingredients onto skewers, arranging on platter, drizzling balsamic",
			Caption:          "Caprese Skewers",
		},
		tags:     []string{"snack", "vegetarian", "italian", "appetizer", "tomatoes", "mozzarella"},
		mealType: culinarydb.MealTypeSnack,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Mexican Street Corn",
			TimeMinutes: 15,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Grill corn until charred",
				"Mix mayo with lime juice",
				"Brush onto corn",
				"Sprinkle with chili powder",
				"Top with cilantro and cheese",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Authentic Mexican street food at home!",
			VoiceoverScript:  "Smoky grilled corn with creamy sauce and spices. Irresistibly delicious.",
			VideoDescription: "Grilling corn, applying sauce, sprinkling spices, colorful toppings",
			Caption:          "Mexican Street Corn",
		},
		tags:     []string{"snack", "mexican", "spicy", "grilled", "corn", "street-food"},
		mealType: culinarydb.MealTypeSnack,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Lemon Herb Chicken",
			TimeMinutes: 30,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Marinate chicken in lemon and herbs",
				"Heat pan over medium high",
				"Cook chicken until golden",
				"Add lemon slices to pan",
				"Serve with roasted vegetables",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Bright and zesty chicken dinner!",
			VoiceoverScript:  "Tender chicken with fresh lemon and aromatic herbs. Light and flavorful.",
			VideoDescription: "Marinating chicken, searing in pan, adding lemon, golden brown finish",
			Caption:          "Lemon Herb Chicken",
		},
		tags:     []string{"dinner", "chicken", "herbs", "lemon", "healthy", "protein"},
		mealType: culinarydb.MealTypeDinner,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Overnight Oats",
			TimeMinutes: 5,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Mix oats with milk",
				"Add chia seeds and honey",
				"Stir in your favorite fruits",
				"Refrigerate overnight",
				"Top with nuts in morning",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Make ahead breakfast for busy mornings!",
			VoiceoverScript:  "Creamy overnight oats with fruits and nuts. Prep tonight, enjoy tomorrow.",
			VideoDescription: "Mixing oats and milk, adding fruits, layering in jar, morning reveal",
			Caption:          "Overnight Oats",
		},
		tags:     []string{"breakfast", "healthy", "meal-prep", "oats", "fruits", "make-ahead"},
		mealType: culinarydb.MealTypeBreakfast,
	},
	{
		recipe: culinarydb.Recipe{
			Title:       "Vegetable Curry",
			TimeMinutes: 25,
			Difficulty:  culinarydb.DifficultyEasy,
			Steps: []string{
				"Sauté onions and spices",
				"Add vegetables and cook",
				"Pour in coconut milk",
				"Simmer until tender",
				"Serve over rice",
			},
		},
		storyboard: culinarydb.Storyboard{
			Hook:             "Warm and comforting vegetable curry!",
			VoiceoverScript:  "Rich coconut curry with mixed vegetables. Spicy, creamy, and satisfying.",
			VideoDescription: "Sautéing spices, adding vegetables, pouring coconut milk, simmering curry",
			Caption:          "Vegetable Curry",
		},
		tags:     []string{"dinner", "vegetarian", "curry", "spices", "coconut", "vegetables"},
		mealType: culinarydb.MealTypeDinner,
	},
}

// defaultItems materializes the catalog as feed items with stable ids.
// Like counts are seeded from the item id so they survive rebuilds.
func defaultItems(liked map[string]bool) []culinarydb.FeedItem {
	items := make([]culinarydb.FeedItem, len(catalog))
	for i, entry := range catalog {
		id := fmt.Sprintf("default_%d", i)
		storyboard := entry.storyboard
		items[i] = culinarydb.FeedItem{
			ID:         id,
			Recipe:     entry.recipe,
			Storyboard: &storyboard,
			VideoURL:   defaultVideos[i%len(defaultVideos)],
			Tags:       entry.tags,
			MealType:   entry.mealType,
			IsDefault:  true,
			IsLiked:    liked[id],
			Likes:      seededLikes(id),
			CreatedAt:  time.Now(),
		}
	}
	return items
}

func seededLikes(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return 10 + int(h.Sum32()%100)
}
