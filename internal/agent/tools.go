// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

const (
	toolShoppingList  = "generate_shopping_list"
	toolSubstitutions = "find_substitutions"
	toolModifyRecipe  = "modify_recipe"
	toolMealPlan      = "create_meal_plan"
	toolCookingTips   = "get_cooking_tips"
	toolNutrition     = "calculate_nutrition"
)

// toolArgs is the union of every tool's arguments. Recipe may arrive as a
// full object or a bare title string, so it stays raw until repair.
type toolArgs struct {
	Recipes         []culinarydb.Recipe `json:"recipes,omitempty"`
	Recipe          json.RawMessage     `json:"recipe,omitempty"`
	IncludeOptional *bool               `json:"includeOptional,omitempty"`
	Ingredient      string              `json:"ingredient,omitempty"`
	Reason          string              `json:"reason,omitempty"`
	RecipeContext   string              `json:"recipeContext,omitempty"`
	Modifications   map[string]any      `json:"modifications,omitempty"`
	Days            int                 `json:"days,omitempty"`
	Preferences     map[string]any      `json:"preferences,omitempty"`
	Step            int                 `json:"step,omitempty"`
	Servings        int                 `json:"servings,omitempty"`
}

// repairArgs fills in arguments the model omitted from the caller's
// context and resolves bare-string recipe references.
func repairArgs(toolName string, args toolArgs, agentCtx Context) toolArgs {
	switch toolName {
	case toolShoppingList, toolMealPlan:
		if len(args.Recipes) == 0 {
			args.Recipes = agentCtx.Recipes
		}
	case toolModifyRecipe:
		if len(args.Recipes) == 0 {
			args.Recipes = agentCtx.Recipes
		}
	}
	switch toolName {
	case toolCookingTips, toolNutrition, toolModifyRecipe:
		if recipe, ok := resolveRecipe(args.Recipe, agentCtx); ok {
			data, err := json.Marshal(recipe)
			if err == nil {
				args.Recipe = data
			}
		}
	}
	return args
}

// resolveRecipe turns the raw recipe argument into a concrete recipe. A
// bare string is matched against context recipe titles case-insensitively,
// falling back to the first recipe; a missing argument also falls back to
// the first recipe.
func resolveRecipe(raw json.RawMessage, agentCtx Context) (culinarydb.Recipe, bool) {
	var recipe culinarydb.Recipe
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &recipe); err == nil && recipe.Title != "" {
			return recipe, true
		}
		var title string
		if err := json.Unmarshal(raw, &title); err == nil {
			for _, r := range agentCtx.Recipes {
				if strings.Contains(strings.ToLower(r.Title), strings.ToLower(title)) {
					return r, true
				}
			}
		}
	}
	if len(agentCtx.Recipes) > 0 {
		return agentCtx.Recipes[0], true
	}
	return culinarydb.Recipe{}, false
}

// ShoppingItem is one entry on a shopping list.
type ShoppingItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
	Optional bool   `json:"optional"`
}

// ShoppingList is the generate_shopping_list result.
type ShoppingList struct {
	Items              []ShoppingItem `json:"items"`
	TotalEstimatedCost string         `json:"totalEstimatedCost"`
	Stores             []string       `json:"stores"`
}

// Substitution is the find_substitutions result.
type Substitution struct {
	Original     string   `json:"original"`
	Alternatives []string `json:"alternatives"`
	Reason       string   `json:"reason"`
}

// MealSlot schedules one recipe in a meal plan.
type MealSlot struct {
	Day      string             `json:"day"`
	Meal     string             `json:"meal"`
	Recipe   *culinarydb.Recipe `json:"recipe,omitempty"`
	PrepTime int                `json:"prepTime"`
}

// MealPlan is the create_meal_plan result.
type MealPlan struct {
	Recipes            []culinarydb.Recipe `json:"recipes"`
	Schedule           []MealSlot          `json:"schedule"`
	PrepNotes          []string            `json:"prepNotes"`
	EstimatedTotalTime int                 `json:"estimatedTotalTime"`
}

// CookingTips is the get_cooking_tips result.
type CookingTips struct {
	Tips            []string `json:"tips"`
	Troubleshooting []string `json:"troubleshooting"`
}

// Nutrition is the calculate_nutrition result, per serving.
type Nutrition struct {
	Calories int    `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
	Fiber    string `json:"fiber"`
	Sodium   string `json:"sodium"`
}

// executeTool runs the named tool. Each tool is one model call with a
// task-specific prompt and a JSON response contract; failures are recorded
// on the result rather than returned.
func (a *Agent) executeTool(ctx context.Context, toolName string, args toolArgs, agentCtx Context) ToolResult {
	result := ToolResult{ToolName: toolName}

	var (
		value any
		err   error
	)
	switch toolName {
	case toolShoppingList:
		value, err = runTool[ShoppingList](ctx, a.model, shoppingListPrompt(args, agentCtx.Ingredients))
	case toolSubstitutions:
		value, err = runTool[Substitution](ctx, a.model, substitutionsPrompt(args))
	case toolModifyRecipe:
		value, err = runTool[culinarydb.Recipe](ctx, a.model, modifyRecipePrompt(args))
	case toolMealPlan:
		value, err = runTool[MealPlan](ctx, a.model, mealPlanPrompt(args))
	case toolCookingTips:
		value, err = runTool[CookingTips](ctx, a.model, cookingTipsPrompt(args))
	case toolNutrition:
		value, err = runTool[Nutrition](ctx, a.model, nutritionPrompt(args))
	default:
		result.Error = "unknown tool: " + toolName
		return result
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true
	result.Result = value
	return result
}

func runTool[T any](ctx context.Context, model Model, prompt string) (*T, error) {
	text, err := model.Generate(ctx, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, true)
	if err != nil {
		return nil, err
	}
	var value T
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("agent: failed to unmarshal tool result: %w", err)
	}
	return &value, nil
}
