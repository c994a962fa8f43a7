// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package plangen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

func TestTemplateStoryboard(t *testing.T) {
	recipe := culinarydb.Recipe{
		Title:       "Tomato Basil Pasta",
		TimeMinutes: 25,
		Difficulty:  culinarydb.DifficultyEasy,
		Steps:       []string{"Boil pasta", "Simmer sauce", "Toss together", "Garnish with basil"},
	}

	storyboard := TemplateStoryboard(recipe)
	require.NotNil(t, storyboard)
	assert.Equal(t, "Tomato Basil Pasta, ready in 25 minutes!", storyboard.Hook)
	assert.Equal(t, "Tomato Basil Pasta", storyboard.Caption)
	assert.NotEmpty(t, storyboard.VoiceoverScript)

	// Only the first two steps make it into the narration and visuals.
	assert.Contains(t, storyboard.VoiceoverScript, "Boil pasta")
	assert.Contains(t, storyboard.VoiceoverScript, "Simmer sauce")
	assert.NotContains(t, storyboard.VoiceoverScript, "Garnish with basil")
	assert.Contains(t, storyboard.VideoDescription, "Boil pasta")
	assert.NotContains(t, storyboard.VideoDescription, "Toss together")
}

func TestTemplateStoryboardDeterministic(t *testing.T) {
	recipe := culinarydb.Recipe{Title: "Caprese Salad", TimeMinutes: 10, Steps: []string{"Slice tomatoes"}}
	assert.Equal(t, TemplateStoryboard(recipe), TemplateStoryboard(recipe))
}
