// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

type modelCall struct {
	contents   []*genai.Content
	jsonOutput bool
}

// scriptedModel returns canned responses in order, recording every call.
type scriptedModel struct {
	responses []string
	errs      []error
	calls     []modelCall
}

func (m *scriptedModel) Generate(_ context.Context, contents []*genai.Content, jsonOutput bool) (string, error) {
	i := len(m.calls)
	m.calls = append(m.calls, modelCall{contents: contents, jsonOutput: jsonOutput})
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i >= len(m.responses) {
		return "", errors.New("scripted model: unexpected extra call")
	}
	return m.responses[i], nil
}

// lastPrompt is the text of the final content of the i-th call.
func (m *scriptedModel) lastPrompt(i int) string {
	contents := m.calls[i].contents
	return contents[len(contents)-1].Parts[0].Text
}

func testContext() Context {
	return Context{
		Recipes: []culinarydb.Recipe{
			{Title: "Classic Avocado Toast", TimeMinutes: 5, Difficulty: culinarydb.DifficultyEasy, Steps: []string{"Toast bread", "Mash avocado"}},
			{Title: "Spicy Thai Basil Stir Fry", TimeMinutes: 15, Difficulty: culinarydb.DifficultyEasy, Steps: []string{"Heat wok", "Stir fry"}},
		},
		Ingredients: []string{"avocado", "bread", "basil"},
	}
}

func TestChatDirectResponse(t *testing.T) {
	model := &scriptedModel{responses: []string{
		`{"needsTool": false, "response": "Sear it two minutes per side."}`,
	}}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "How long do I sear salmon?", testContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Sear it two minutes per side.", reply.Response)
	assert.Empty(t, reply.ToolResults)

	require.Len(t, model.calls, 1)
	assert.True(t, model.calls[0].jsonOutput)
}

func TestChatDecisionErrorFallsBackToPlainReply(t *testing.T) {
	model := &scriptedModel{
		errs:      []error{errors.New("model unavailable")},
		responses: []string{"", "Rest the steak five minutes."},
	}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "How long should steak rest?", testContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Rest the steak five minutes.", reply.Response)

	// The retry drops the tool-selection contract.
	require.Len(t, model.calls, 2)
	assert.False(t, model.calls[1].jsonOutput)
}

func TestChatMalformedDecisionFallsBackToText(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"Sure! Just whisk the eggs gently.",
	}}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "How do I whisk eggs?", testContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Sure! Just whisk the eggs gently.", reply.Response)
	assert.Empty(t, reply.ToolResults)
}

func TestChatDecisionFencedInMarkdown(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"```json\n{\"needsTool\": false, \"response\": \"Use a cast iron pan.\"}\n```",
	}}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "What pan should I use?", testContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Use a cast iron pan.", reply.Response)
}

func TestChatShoppingListToolWithArgRepair(t *testing.T) {
	list := ShoppingList{
		Items:  []ShoppingItem{{Name: "avocado", Quantity: "2", Category: "produce"}},
		Stores: []string{"any grocery store"},
	}
	listJSON, err := json.Marshal(list)
	require.NoError(t, err)

	model := &scriptedModel{responses: []string{
		// Decision omits recipes; repair must pull them from context.
		`{"needsTool": true, "toolName": "generate_shopping_list", "toolArgs": {}}`,
		string(listJSON),
		"Here's your shopping list!",
	}}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "Make me a shopping list", testContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Here's your shopping list!", reply.Response)

	require.Len(t, reply.ToolResults, 1)
	result := reply.ToolResults[0]
	assert.Equal(t, toolShoppingList, result.ToolName)
	assert.True(t, result.Success)
	got, ok := result.Result.(*ShoppingList)
	require.True(t, ok)
	assert.Equal(t, list.Items, got.Items)

	// The tool prompt carries the context recipes the model left out.
	require.Len(t, model.calls, 3)
	assert.True(t, model.calls[1].jsonOutput)
	assert.Contains(t, model.lastPrompt(1), "Classic Avocado Toast")
	assert.Contains(t, model.lastPrompt(1), "Spicy Thai Basil Stir Fry")
	assert.False(t, model.calls[2].jsonOutput)
}

func TestChatResolvesBareRecipeTitle(t *testing.T) {
	tips := CookingTips{Tips: []string{"High heat, short time."}}
	tipsJSON, err := json.Marshal(tips)
	require.NoError(t, err)

	model := &scriptedModel{responses: []string{
		`{"needsTool": true, "toolName": "get_cooking_tips", "toolArgs": {"recipe": "thai"}}`,
		string(tipsJSON),
		"Keep the wok screaming hot.",
	}}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "Tips for the thai one?", testContext(), nil)
	require.NoError(t, err)
	require.Len(t, reply.ToolResults, 1)
	assert.True(t, reply.ToolResults[0].Success)

	// The bare title substring resolves to the full matching recipe.
	assert.Contains(t, model.lastPrompt(1), "Spicy Thai Basil Stir Fry")
}

func TestChatUnknownRecipeFallsBackToFirst(t *testing.T) {
	nutrition := Nutrition{Calories: 320, Protein: "8g"}
	nutritionJSON, err := json.Marshal(nutrition)
	require.NoError(t, err)

	model := &scriptedModel{responses: []string{
		`{"needsTool": true, "toolName": "calculate_nutrition", "toolArgs": {"recipe": "lasagna"}}`,
		string(nutritionJSON),
		"About 320 calories per serving.",
	}}
	agent := NewAgentWithModel(model)

	_, err = agent.Chat(t.Context(), "Nutrition for the lasagna?", testContext(), nil)
	require.NoError(t, err)
	assert.Contains(t, model.lastPrompt(1), "Classic Avocado Toast")
}

func TestChatToolFailureReportedInReply(t *testing.T) {
	model := &scriptedModel{responses: []string{
		`{"needsTool": true, "toolName": "find_substitutions", "toolArgs": {"ingredient": "butter"}}`,
		"this is not json",
		"I couldn't look that up, but olive oil usually works.",
	}}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "What can replace butter?", testContext(), nil)
	require.NoError(t, err)
	require.Len(t, reply.ToolResults, 1)
	assert.False(t, reply.ToolResults[0].Success)
	assert.NotEmpty(t, reply.ToolResults[0].Error)
	assert.Equal(t, "I couldn't look that up, but olive oil usually works.", reply.Response)
}

func TestChatUnknownToolName(t *testing.T) {
	model := &scriptedModel{responses: []string{
		`{"needsTool": true, "toolName": "order_takeout", "toolArgs": {}}`,
		"Let's cook instead!",
	}}
	agent := NewAgentWithModel(model)

	reply, err := agent.Chat(t.Context(), "Order me takeout", testContext(), nil)
	require.NoError(t, err)
	require.Len(t, reply.ToolResults, 1)
	assert.False(t, reply.ToolResults[0].Success)
	assert.Contains(t, reply.ToolResults[0].Error, "unknown tool")
	// Only the decision and final calls happen, no tool call.
	assert.Len(t, model.calls, 2)
}

func TestChatHistoryTruncatedToLimit(t *testing.T) {
	model := &scriptedModel{responses: []string{
		`{"needsTool": false, "response": "Got it."}`,
	}}
	agent := NewAgentWithModel(model)

	history := make([]Message, 0, historyLimit+5)
	for range historyLimit + 5 {
		history = append(history, Message{Role: "user", Content: "older turn"})
	}
	history[len(history)-1] = Message{Role: "assistant", Content: "newest turn"}

	_, err := agent.Chat(t.Context(), "hello", testContext(), history)
	require.NoError(t, err)

	// system + ack + truncated history + action prompt.
	contents := model.calls[0].contents
	assert.Len(t, contents, 2+historyLimit+1)
	assert.Equal(t, "newest turn", contents[len(contents)-2].Parts[0].Text)
}

func TestParseDecision(t *testing.T) {
	d, ok := parseDecision(`{"needsTool": true, "toolName": "modify_recipe"}`)
	require.True(t, ok)
	assert.True(t, d.NeedsTool)
	assert.Equal(t, toolModifyRecipe, d.ToolName)

	_, ok = parseDecision("I'd love to help with that!")
	assert.False(t, ok)
}
