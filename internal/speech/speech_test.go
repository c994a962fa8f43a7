// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package speech

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		apiKey:     "test-key",
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}
}

func TestSynthesize(t *testing.T) {
	var gotPath, gotKey, gotAccept string
	var gotBody synthesizeRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		gotAccept = r.Header.Get("Accept")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte("mp3-bytes"))
	})

	profile := NarrationProfile()
	audio, err := client.Synthesize(t.Context(), "Let's make pasta.", profile)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)

	assert.Equal(t, "/text-to-speech/"+profile.VoiceID, gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "audio/mpeg", gotAccept)
	assert.Equal(t, "Let's make pasta.", gotBody.Text)
	assert.Equal(t, profile.ModelID, gotBody.ModelID)
	assert.InDelta(t, profile.Stability, gotBody.VoiceSettings.Stability, 0.001)
	assert.InDelta(t, profile.SimilarityBoost, gotBody.VoiceSettings.SimilarityBoost, 0.001)
	assert.True(t, gotBody.VoiceSettings.UseSpeakerBoost)
}

func TestSynthesizeErrorSurfacesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	})

	_, err := client.Synthesize(t.Context(), "hello", NarrationProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestVoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voices", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		_, _ = w.Write([]byte(`{"voices":[{"voice_id":"v1","name":"Adam","category":"premade"}]}`))
	})

	voices, err := client.Voices(t.Context())
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "Adam", voices[0].Name)
}

func TestNarrationText(t *testing.T) {
	got := NarrationText("Caprese Salad", []string{"Slice tomatoes", "Layer with mozzarella"})
	assert.Equal(t, "Let's make Caprese Salad. Step 1: Slice tomatoes. Step 2: Layer with mozzarella. Enjoy your Caprese Salad!", got)
}

func TestProfilesDifferInDelivery(t *testing.T) {
	narration := NarrationProfile()
	chef := ChefProfile()
	assert.Equal(t, narration.VoiceID, chef.VoiceID)
	assert.NotEqual(t, narration.Stability, chef.Stability)
	assert.NotEqual(t, narration.Style, chef.Style)
}
