// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package speech synthesizes narration audio with the ElevenLabs API.
//
// There is no official Go SDK so requests are issued manually.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://api.elevenlabs.io/v1"

// Adam, warm and clear, works for both narration and the chef persona.
const defaultVoiceID = "pNInz6obpgDQGcFmaJgB"

const defaultModelID = "eleven_multilingual_v2"

// Profile is a voice with delivery settings.
type Profile struct {
	VoiceID         string
	ModelID         string
	Stability       float64
	SimilarityBoost float64
	Style           float64
	UseSpeakerBoost bool
}

// NarrationProfile is the delivery used for recipe voiceovers.
func NarrationProfile() Profile {
	return Profile{
		VoiceID:         defaultVoiceID,
		ModelID:         defaultModelID,
		Stability:       0.6,
		SimilarityBoost: 0.8,
		Style:           0.2,
		UseSpeakerBoost: true,
	}
}

// ChefProfile is the more expressive delivery used for agent replies.
func ChefProfile() Profile {
	return Profile{
		VoiceID:         defaultVoiceID,
		ModelID:         defaultModelID,
		Stability:       0.7,
		SimilarityBoost: 0.8,
		Style:           0.3,
		UseSpeakerBoost: true,
	}
}

// NewClient returns a Client authenticating with apiKey. httpClient may be
// nil to use http.DefaultClient.
func NewClient(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// Client calls the ElevenLabs API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Synthesize converts text to MP3 audio bytes with the given profile.
// Failures are not retried; the vendor body is surfaced in the error.
func (c *Client) Synthesize(ctx context.Context, text string, profile Profile) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{
		Text:    text,
		ModelID: profile.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       profile.Stability,
			SimilarityBoost: profile.SimilarityBoost,
			Style:           profile.Style,
			UseSpeakerBoost: profile.UseSpeakerBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech: marshalling synthesize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-speech/"+profile.VoiceID, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("speech: creating synthesize request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: sending synthesize request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		errBody, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("speech: reading error response body: %w", err)
		}
		return nil, fmt.Errorf("speech: synthesize request failed with status %d: %s", res.StatusCode, errBody) //nolint:err113
	}
	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("speech: reading audio response body: %w", err)
	}
	return audio, nil
}

// Voice is an available ElevenLabs voice.
type Voice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// Voices lists the voices available to the API key.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("speech: creating voices request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: sending voices request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech: voices request failed with status %d", res.StatusCode) //nolint:err113
	}
	var vr voicesResponse
	if err := json.NewDecoder(res.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("speech: decoding voices response: %w", err)
	}
	return vr.Voices, nil
}

// NarrationText builds the step-by-step narration script for a recipe.
func NarrationText(title string, steps []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Let's make %s. ", title)
	for i, step := range steps {
		fmt.Fprintf(&b, "Step %d: %s. ", i+1, step)
	}
	fmt.Fprintf(&b, "Enjoy your %s!", title)
	return b.String()
}
