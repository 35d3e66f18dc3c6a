// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/prajyot2003/moodify/internal/cloud"
	"github.com/prajyot2003/moodify/internal/core/services"
	"github.com/prajyot2003/moodify/internal/core/workflow"
)

// stubGenerator satisfies the generator seam; the route tests below never
// submit classifiable text, so it only has to exist.
type stubGenerator struct{}

func (s *stubGenerator) GenerateContent(_ context.Context, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
	return &genai.GenerateContentResponse{}, nil
}

// stubProvider returns canned raw videos.
type stubProvider struct {
	videos []services.RawVideo
}

func (s *stubProvider) Search(_ context.Context, _ string, _ int) ([]services.RawVideo, error) {
	return s.videos, nil
}

// newTestRouter seeds the package state with fakes and builds the same
// route groups main registers.
func newTestRouter(provider services.SearchProvider, voiceEnabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	config := cloud.NewConfig()
	config.PromptTemplates.EmotionPrompt = "{{.TEXT}}"
	config.YouTube.QuerySuffix = "songs playlist"
	config.YouTube.DefaultLimit = 5
	config.Voice.MaxClipSizeBytes = 1024

	state.config = config
	state.voiceEnabled = voiceEnabled
	state.transcriptionService = nil
	state.recommendations = workflow.NewRecommendationPipeline(
		config,
		&stubGenerator{},
		services.NewTrackSearchService(provider, config.YouTube.QuerySuffix))

	r := gin.New()
	apiV1 := r.Group("/api/v1")
	{
		RecommendationRouter(apiV1)
		CapabilitiesRouter(apiV1)
		TranscriptionRouter(apiV1)
	}
	return r
}

func postJSON(r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecommendationsRejectEmptySubmission(t *testing.T) {
	r := newTestRouter(&stubProvider{}, true)

	w := postJSON(r, "/api/v1/recommendations", `{"text": "   ", "mood": ""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, msgEmptySubmission, body["warning"])
}

func TestRecommendationsRejectUnknownMood(t *testing.T) {
	r := newTestRouter(&stubProvider{}, true)

	w := postJSON(r, "/api/v1/recommendations", `{"text": "", "mood": "grunge"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unknown mood: grunge", body["error"])
}

func TestRecommendationsAttachNoSongsMessage(t *testing.T) {
	r := newTestRouter(&stubProvider{videos: []services.RawVideo{}}, true)

	w := postJSON(r, "/api/v1/recommendations", `{"mood": "chill"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var body recommendationResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, msgNoSongs, body.Message)
	assert.Equal(t, "no_results", body.Plan.Kind)
	assert.Equal(t, "chill", string(body.ActiveMood))
}

func TestRecommendationsOmitMessageWhenTracksExist(t *testing.T) {
	provider := &stubProvider{videos: []services.RawVideo{
		{Title: "Track", Link: "https://www.youtube.com/watch?v=t1"},
	}}
	r := newTestRouter(provider, true)

	w := postJSON(r, "/api/v1/recommendations", `{"mood": "party"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var body recommendationResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "", body.Message)
	assert.Equal(t, "embed", body.Plan.Kind)
	assert.Equal(t, "t1", body.Plan.PrimaryID)
}

func TestTranscriptionsHiddenWhenVoiceDisabled(t *testing.T) {
	r := newTestRouter(&stubProvider{}, false)

	w := postJSON(r, "/api/v1/transcriptions", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCapabilitiesReportVoiceFlag(t *testing.T) {
	r := newTestRouter(&stubProvider{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/capabilities", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]bool
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body["voice_input"])
}

func TestVoiceInputEnabled(t *testing.T) {
	// No marker configured: voice stays on without consulting the env.
	assert.True(t, voiceInputEnabled(""))

	// A configured but absent marker: this is not a hosted deployment.
	assert.True(t, voiceInputEnabled("MOODIFY_TEST_HOSTED_MARKER"))

	// Marker present: hosted deployment, voice off. The value is irrelevant.
	t.Setenv("MOODIFY_TEST_HOSTED_MARKER", "")
	assert.False(t, voiceInputEnabled("MOODIFY_TEST_HOSTED_MARKER"))
}
