// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package agent implements the conversational cooking assistant: a
// two-phase tool loop where the model first decides, as structured JSON,
// whether one of six fixed tools should run, then replies referencing the
// tool's result.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

const agentModel = "gemini-2.5-flash"

// The last N conversation turns sent to the model.
const historyLimit = 10

// Model is the slice of the generation API the agent uses. jsonOutput
// requests application/json responses.
type Model interface {
	Generate(ctx context.Context, contents []*genai.Content, jsonOutput bool) (string, error)
}

type genaiModel struct {
	client *genai.Client
}

func (m genaiModel) Generate(ctx context.Context, contents []*genai.Content, jsonOutput bool) (string, error) {
	var config *genai.GenerateContentConfig
	if jsonOutput {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		}
	}
	res, err := m.client.Models.GenerateContent(ctx, agentModel, contents, config)
	if err != nil {
		return "", fmt.Errorf("agent: generating content: %w", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("agent: unexpected response from generate ai: %v", res) //nolint:err113
	}
	return res.Candidates[0].Content.Parts[0].Text, nil
}

// Message is one conversation turn.
type Message struct {
	// Role is user or assistant.
	Role string `json:"role"`

	Content string `json:"content"`
}

// Context is the caller's known recipes and ingredients, used for tool
// argument repair.
type Context struct {
	Recipes     []culinarydb.Recipe `json:"recipes"`
	Ingredients []string            `json:"ingredients"`
}

// ToolResult is the outcome of one tool execution.
type ToolResult struct {
	ToolName string `json:"toolName"`
	Success  bool   `json:"success"`
	Result   any    `json:"result"`
	Error    string `json:"error,omitempty"`
}

// Reply is the agent's answer to one user message.
type Reply struct {
	Response    string       `json:"response"`
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

// NewAgent returns an Agent backed by genAI.
func NewAgent(genAI *genai.Client) *Agent {
	return &Agent{model: genaiModel{client: genAI}}
}

// NewAgentWithModel returns an Agent over a custom model.
func NewAgentWithModel(model Model) *Agent {
	return &Agent{model: model}
}

// Agent answers cooking questions with optional tool use.
type Agent struct {
	model Model
}

// decision is the phase-1 tool-selection contract.
type decision struct {
	NeedsTool bool     `json:"needsTool"`
	ToolName  string   `json:"toolName"`
	ToolArgs  toolArgs `json:"toolArgs"`
	Response  string   `json:"response"`
}

var jsonFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Chat handles one user message. Malformed tool-selection JSON degrades to
// a direct response; tool failures are reported in the final reply rather
// than surfaced as errors.
func (a *Agent) Chat(ctx context.Context, message string, agentCtx Context, history []Message) (*Reply, error) {
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	base := a.baseContents(agentCtx, history)

	actionContents := append(append([]*genai.Content(nil), base...),
		genai.NewContentFromText(actionPrompt(message), genai.RoleUser))
	actionText, err := a.model.Generate(ctx, actionContents, true)
	if err != nil {
		return a.fallback(ctx, base, message, err)
	}

	action, ok := parseDecision(actionText)
	if !ok {
		slog.WarnContext(ctx, "agent: failed to parse tool decision, defaulting to direct response")
		return &Reply{Response: actionText}, nil
	}

	if !action.NeedsTool || action.ToolName == "" {
		response := action.Response
		if response == "" {
			response = actionText
		}
		return &Reply{Response: response}, nil
	}

	args := repairArgs(action.ToolName, action.ToolArgs, agentCtx)
	result := a.executeTool(ctx, action.ToolName, args, agentCtx)

	finalContents := append(append([]*genai.Content(nil), base...),
		genai.NewContentFromText(finalPrompt(message, action.ToolName, result), genai.RoleUser))
	response, err := a.model.Generate(ctx, finalContents, false)
	if err != nil {
		return nil, fmt.Errorf("agent: generating final reply: %w", err)
	}

	return &Reply{
		Response:    response,
		ToolResults: []ToolResult{result},
	}, nil
}

func (a *Agent) baseContents(agentCtx Context, history []Message) []*genai.Content {
	contents := []*genai.Content{
		genai.NewContentFromText(systemPrompt(agentCtx), genai.RoleUser),
		genai.NewContentFromText("I understand. I'm your Cooking Assistant Agent. How can I help you with your recipes today?", genai.RoleModel),
	}
	for _, msg := range history {
		var role genai.Role = genai.RoleUser
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}

// fallback retries without the tool-selection contract when phase 1 fails.
func (a *Agent) fallback(ctx context.Context, base []*genai.Content, message string, cause error) (*Reply, error) {
	slog.WarnContext(ctx, "agent: tool decision failed, falling back to direct reply", "error", cause)
	contents := append(append([]*genai.Content(nil), base...),
		genai.NewContentFromText(message, genai.RoleUser))
	response, err := a.model.Generate(ctx, contents, false)
	if err != nil {
		return nil, fmt.Errorf("agent: fallback reply: %w", err)
	}
	return &Reply{Response: response}, nil
}

// parseDecision unwraps markdown code fences before parsing.
func parseDecision(text string) (decision, bool) {
	text = strings.TrimSpace(text)
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	var d decision
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return decision{}, false
	}
	return d, true
}
