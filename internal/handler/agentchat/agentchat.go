// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package agentchat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/curioswitch/culinaryvision/internal/agent"
	"github.com/curioswitch/culinaryvision/internal/media"
	"github.com/curioswitch/culinaryvision/internal/speech"
)

// Request is one user turn with the caller's recipe context. Voice asks
// for a chef-voiced audio rendition of the reply.
type Request struct {
	Message string          `json:"message"`
	Context agent.Context   `json:"context"`
	History []agent.Message `json:"history,omitempty"`
	Voice   bool            `json:"voice,omitempty"`
}

type Response struct {
	Response     string             `json:"response"`
	ToolResults  []agent.ToolResult `json:"toolResults,omitempty"`
	VoiceoverURL string             `json:"voiceoverUrl,omitempty"`
}

// NewHandler returns a Handler. tts and audio may be nil to disable voiced
// replies.
func NewHandler(assistant *agent.Agent, tts *speech.Client, audio *media.Store) *Handler {
	return &Handler{
		assistant: assistant,
		tts:       tts,
		audio:     audio,
	}
}

// Handler relays a chat turn to the cooking agent.
type Handler struct {
	assistant *agent.Agent
	tts       *speech.Client
	audio     *media.Store
}

func (h *Handler) AgentChat(ctx context.Context, req *Request) (*Response, error) {
	reply, err := h.assistant.Chat(ctx, req.Message, req.Context, req.History)
	if err != nil {
		return nil, fmt.Errorf("agentchat: chatting with agent: %w", err)
	}

	res := &Response{
		Response:    reply.Response,
		ToolResults: reply.ToolResults,
	}
	if req.Voice && h.tts != nil && h.audio != nil {
		res.VoiceoverURL = h.voiceReply(ctx, reply.Response)
	}
	return res, nil
}

// voiceReply synthesizes the reply with the chef profile. Failure only
// drops the audio, never the text.
func (h *Handler) voiceReply(ctx context.Context, text string) string {
	audio, err := h.tts.Synthesize(ctx, text, speech.ChefProfile())
	if err != nil {
		slog.WarnContext(ctx, "agentchat: synthesizing reply", "error", err)
		return ""
	}
	url, err := h.audio.Write(ctx, "agent/"+uuid.NewString()+".mp3", audio)
	if err != nil {
		slog.WarnContext(ctx, "agentchat: storing reply audio", "error", err)
		return ""
	}
	return url
}
