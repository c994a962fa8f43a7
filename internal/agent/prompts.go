// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

type toolSpec struct {
	name        string
	description string
}

var toolSpecs = []toolSpec{
	{toolShoppingList, "Generate a comprehensive shopping list for one or more recipes. Organizes items by category and indicates optional items."},
	{toolSubstitutions, "Find ingredient substitutions for dietary restrictions, allergies, or availability issues."},
	{toolModifyRecipe, "Modify a recipe based on user preferences, dietary restrictions, or ingredient availability."},
	{toolMealPlan, "Create a meal plan with multiple recipes, scheduling, and prep notes."},
	{toolCookingTips, "Get cooking tips, techniques, and troubleshooting advice for a recipe."},
	{toolNutrition, "Calculate nutritional information for a recipe."},
}

func systemPrompt(agentCtx Context) string {
	recipes, _ := json.MarshalIndent(agentCtx.Recipes, "", "  ")
	var tools strings.Builder
	for _, tool := range toolSpecs {
		fmt.Fprintf(&tools, "- %s: %s\n", tool.name, tool.description)
	}
	return fmt.Sprintf(`You are an intelligent Cooking Assistant Agent. You help users with recipes, meal planning, shopping, and cooking guidance.

Available context:
- Recipes: %s
- Available ingredients: %s

You have access to these tools:
%s
When the user asks for something that requires a tool, you should call the appropriate tool. Be helpful, friendly, and proactive in suggesting ways to help the user.`,
		recipes, strings.Join(agentCtx.Ingredients, ", "), tools.String())
}

func actionPrompt(message string) string {
	var tools strings.Builder
	for _, tool := range toolSpecs {
		fmt.Fprintf(&tools, "%s: %s\n\n", tool.name, tool.description)
	}
	return fmt.Sprintf(`User asked: %q

Available tools:
%s
Analyze the user's request and determine the best course of action. If a tool would be helpful, use it. Otherwise, provide a direct helpful response.

Respond with JSON only:
{
  "needsTool": true/false,
  "toolName": "tool_name (if needsTool is true)",
  "toolArgs": { ... } (if needsTool is true, include all required parameters),
  "response": "your response (if needsTool is false)"
}

Important:
- For shopping lists, toolArgs should include: { "recipes": [...], "includeOptional": true/false }
- For substitutions, toolArgs should include: { "ingredient": "...", "reason": "...", "recipeContext": "..." }
- For modifications, toolArgs should include: { "recipe": {...}, "modifications": {...} }
- For meal plans, toolArgs should include: { "recipes": [...], "days": number, "preferences": {...} }
- For cooking tips, toolArgs should include: { "recipe": {...}, "step": number (optional) }
- For nutrition, toolArgs should include: { "recipe": {...}, "servings": number }`,
		message, tools.String())
}

func finalPrompt(message string, toolName string, result ToolResult) string {
	resultJSON, _ := json.MarshalIndent(result.Result, "", "  ")
	errorNote := ""
	if !result.Success {
		errorNote = "Error: " + result.Error + "\n\n"
	}
	return fmt.Sprintf(`The user asked: %q

I executed the tool %q with these results:
%s

%sNow provide a helpful response to the user based on these results. Be conversational and helpful.`,
		message, toolName, resultJSON, errorNote)
}

func shoppingListPrompt(args toolArgs, availableIngredients []string) string {
	recipes, _ := json.MarshalIndent(args.Recipes, "", "  ")
	optionalNote := "Include optional items."
	if args.IncludeOptional != nil && !*args.IncludeOptional {
		optionalNote = "Exclude optional items."
	}
	return fmt.Sprintf(`Generate a shopping list for the following recipes.

Recipes:
%s

Available ingredients (don't include these): %s

Create a categorized shopping list. For each item, provide:
- name: ingredient name
- quantity: amount needed (e.g., "2 cups", "1 lb")
- category: one of: produce, dairy, meat, pantry, spices, other
- optional: true if it's an optional/extra ingredient

%s

Return a JSON object with this structure:
{
  "items": [
    {"name": "...", "quantity": "...", "category": "...", "optional": false}
  ],
  "totalEstimatedCost": "estimated cost in USD",
  "stores": ["suggested stores"]
}`, recipes, strings.Join(availableIngredients, ", "), optionalNote)
}

func substitutionsPrompt(args toolArgs) string {
	contextNote := ""
	if args.RecipeContext != "" {
		contextNote = "Recipe context: " + args.RecipeContext + "\n\n"
	}
	return fmt.Sprintf(`Find substitutions for the ingredient %q in the context of: %s.

%sProvide 3-5 alternative ingredients that can be used. For each alternative, explain why it works as a substitution.

Return JSON:
{
  "original": %q,
  "alternatives": ["alternative1", "alternative2", ...],
  "reason": "explanation of why these work as substitutions"
}`, args.Ingredient, args.Reason, contextNote, args.Ingredient)
}

func modifyRecipePrompt(args toolArgs) string {
	modifications, _ := json.MarshalIndent(args.Modifications, "", "  ")
	return fmt.Sprintf(`Modify the following recipe based on these requirements:
%s

Original recipe:
%s

Modify the recipe to accommodate these requirements while maintaining flavor and quality. Update the steps, ingredients, and cooking instructions accordingly.

Return the modified recipe as JSON with the same structure as the original.`,
		modifications, args.Recipe)
}

func mealPlanPrompt(args toolArgs) string {
	recipes, _ := json.MarshalIndent(args.Recipes, "", "  ")
	preferencesNote := ""
	if len(args.Preferences) > 0 {
		preferences, _ := json.MarshalIndent(args.Preferences, "", "  ")
		preferencesNote = "Preferences: " + string(preferences) + "\n\n"
	}
	return fmt.Sprintf(`Create a %d-day meal plan using these recipes:
%s

%sCreate a schedule that distributes the recipes across meals. Include prep notes and estimated total time.

Return JSON:
{
  "recipes": [...],
  "schedule": [
    {"day": "Monday", "meal": "dinner", "recipe": {...}, "prepTime": 30}
  ],
  "prepNotes": ["prep note 1", ...],
  "estimatedTotalTime": 120
}`, args.Days, recipes, preferencesNote)
}

func cookingTipsPrompt(args toolArgs) string {
	focus := "Provide general tips for the entire recipe."
	if args.Step > 0 {
		focus = fmt.Sprintf("Focus on step %d.", args.Step)
	}
	return fmt.Sprintf(`Provide cooking tips and troubleshooting advice for this recipe:
%s

%s

Return JSON:
{
  "tips": ["tip 1", "tip 2", ...],
  "troubleshooting": ["common issue 1 and solution", ...]
}`, args.Recipe, focus)
}

func nutritionPrompt(args toolArgs) string {
	servings := args.Servings
	if servings <= 0 {
		servings = 1
	}
	return fmt.Sprintf(`Estimate nutritional information for this recipe:
%s

Servings: %d

Provide estimated nutritional values per serving. Return JSON:
{
  "calories": 250,
  "protein": "15g",
  "carbs": "30g",
  "fat": "8g",
  "fiber": "5g",
  "sodium": "500mg"
}`, args.Recipe, servings)
}
