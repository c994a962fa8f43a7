// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package culinarydb

import "google.golang.org/genai"

// StoryboardSchema is the response contract for a single video storyboard.
var StoryboardSchema = &genai.Schema{
	Type:        "object",
	Description: "A storyboard for a short vertical cooking video.",
	Required:    []string{"hook", "voiceover_script", "video_description", "caption"},
	Properties: map[string]*genai.Schema{
		"hook": {
			Type:        "string",
			Description: "One-sentence attention grabber.",
		},
		"voiceover_script": {
			Type:        "string",
			Description: "Natural narration for a 10-second video, ~30-40 words.",
		},
		"video_description": {
			Type:        "string",
			Description: "Detailed description of the 10-second cooking video, covering key steps and visual elements.",
		},
		"caption": {
			Type:        "string",
			Description: "Main on-screen text/caption for the video.",
		},
	},
}

// CulinaryPlanSchema is the response contract for analyzing an ingredient
// photo into a culinary plan.
var CulinaryPlanSchema = &genai.Schema{
	Type:        "object",
	Description: "A culinary plan generated from an ingredient photo.",
	Required:    []string{"ingredients", "recipes", "storyboard"},
	Properties: map[string]*genai.Schema{
		"ingredients": {
			Type:        "array",
			Description: "Lowercase, singular ingredient names identified from the image.",
			Items: &genai.Schema{
				Type: "string",
			},
		},
		"recipes": {
			Type:        "array",
			Description: "Recipes that can be prepared from the ingredients.",
			Items: &genai.Schema{
				Type:        "object",
				Description: "A recipe proposal.",
				Required:    []string{"title", "time_minutes", "difficulty", "steps", "missing_items"},
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        "string",
						Description: "Fun & catchy, <= 6 words.",
					},
					"time_minutes": {
						Type:        "integer",
						Description: "Preparation time in minutes, <= 25.",
					},
					"difficulty": {
						Type:        "string",
						Description: "Should be 'easy'.",
					},
					"steps": {
						Type:        "array",
						Description: "5-8 short steps, imperative tense, <= 12 words.",
						Items: &genai.Schema{
							Type: "string",
						},
					},
					"missing_items": {
						Type:        "array",
						Description: "0-2 optional extras.",
						Items: &genai.Schema{
							Type: "string",
						},
					},
				},
			},
		},
		"storyboard": StoryboardSchema,
	},
}
