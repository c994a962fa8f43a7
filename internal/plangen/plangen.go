// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package plangen generates culinary plans and storyboards from the
// multimodal model.
package plangen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
	"github.com/curioswitch/culinaryvision/internal/failure"
)

const planModel = "gemini-2.5-flash"

// NewGenerator returns a Generator using genAI.
func NewGenerator(genAI *genai.Client) *Generator {
	return &Generator{
		genAI: genAI,
		model: planModel,
	}
}

// Generator creates culinary plans from ingredient photos and storyboards
// from recipes.
type Generator struct {
	genAI *genai.Client
	model string
}

// GeneratePlan identifies ingredients in the image and returns a full
// culinary plan with recipe options and a storyboard for the first recipe.
// Output that does not parse against the plan schema is an invalid-response
// failure with no partial recovery.
func (g *Generator) GeneratePlan(ctx context.Context, image []byte, mimeType string) (*culinarydb.CulinaryPlan, error) {
	res, err := g.genAI.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(planPrompt),
		}, genai.RoleUser),
	}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   culinarydb.CulinaryPlanSchema,
	})
	if err != nil {
		return nil, failure.Classify(fmt.Errorf("plangen: generating plan: %w", err))
	}
	if len(res.Candidates) != 1 || len(res.Candidates[0].Content.Parts) != 1 || res.Candidates[0].Content.Parts[0].Text == "" {
		return nil, failure.New(failure.KindInvalidResponse, fmt.Sprintf("plangen: unexpected response from generate ai: %v", res))
	}
	text := strings.TrimSpace(res.Candidates[0].Content.Parts[0].Text)

	var plan culinarydb.CulinaryPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, failure.New(failure.KindInvalidResponse, fmt.Sprintf("plangen: failed to unmarshal plan: %v", err))
	}
	if len(plan.Recipes) == 0 || plan.Storyboard == nil {
		return nil, failure.New(failure.KindInvalidResponse, "plangen: plan missing recipes or storyboard")
	}
	return &plan, nil
}

// GenerateStoryboard creates a 10-second video storyboard for a single
// recipe.
func (g *Generator) GenerateStoryboard(ctx context.Context, recipe culinarydb.Recipe) (*culinarydb.Storyboard, error) {
	res, err := g.genAI.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(storyboardPrompt(recipe), genai.RoleUser),
	}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   culinarydb.StoryboardSchema,
	})
	if err != nil {
		return nil, failure.Classify(fmt.Errorf("plangen: generating storyboard: %w", err))
	}
	if len(res.Candidates) != 1 || len(res.Candidates[0].Content.Parts) != 1 || res.Candidates[0].Content.Parts[0].Text == "" {
		return nil, failure.New(failure.KindInvalidResponse, fmt.Sprintf("plangen: unexpected response from generate ai: %v", res))
	}

	var storyboard culinarydb.Storyboard
	if err := json.Unmarshal([]byte(res.Candidates[0].Content.Parts[0].Text), &storyboard); err != nil {
		return nil, failure.New(failure.KindInvalidResponse, fmt.Sprintf("plangen: failed to unmarshal storyboard: %v", err))
	}
	return &storyboard, nil
}

// TemplateStoryboard deterministically builds a storyboard from the recipe
// alone, with no model call. The pipeline's test mode uses it in place of
// GenerateStoryboard.
func TemplateStoryboard(recipe culinarydb.Recipe) *culinarydb.Storyboard {
	keySteps := recipe.Steps
	if len(keySteps) > 2 {
		keySteps = keySteps[:2]
	}
	return &culinarydb.Storyboard{
		Hook:            fmt.Sprintf("%s, ready in %d minutes!", recipe.Title, recipe.TimeMinutes),
		VoiceoverScript: fmt.Sprintf("This is %s, done in just %d minutes. %s. Quick, easy, and delicious.", recipe.Title, recipe.TimeMinutes, strings.Join(keySteps, ". ")),
		VideoDescription: fmt.Sprintf("A fast-paced vertical cooking video of %s. Close-up shots of the key steps: %s. Clean kitchen setting with smooth transitions.",
			recipe.Title, strings.Join(keySteps, ". ")),
		Caption: recipe.Title,
	}
}
