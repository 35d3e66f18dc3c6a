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
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prajyot2003/moodify/internal/core/model"
	"github.com/prajyot2003/moodify/internal/core/services"
)

// User-visible messages. The frontend renders these verbatim.
const (
	msgEmptySubmission = "Type how you feel or use the dropdown to pick a mood."
	msgNoSongs         = "No songs found. Try a different mood."
	msgNoSpeech        = "Could not understand the audio. Please try again."
	msgNoVoice         = "No voice detected. Please try again."
	msgBadClip         = "That recording format is not supported."
	msgVoiceFailed     = "Voice capture failed. Please try again."
)

// recommendationRequest is the body of POST /api/v1/recommendations.
type recommendationRequest struct {
	Text  string `json:"text"`  // Free text describing how the user feels; may be blank.
	Mood  string `json:"mood"`  // An explicit mood choice; "" when the user picked nothing.
	Limit int    `json:"limit"` // Maximum number of tracks; 0 means the configured default.
}

// recommendationResponse is the answer for one submission.
type recommendationResponse struct {
	DetectedEmotion *model.EmotionPrediction `json:"detected_emotion,omitempty"` // Present only when text was classified.
	DetectedMood    model.Mood               `json:"detected_mood,omitempty"`    // The mood the mapping table produced.
	ActiveMood      model.Mood               `json:"active_mood"`                // The mood the playlist was built for.
	Plan            model.PresentationPlan   `json:"plan"`                       // The playlist presentation plan.
	Message         string                   `json:"message,omitempty"`          // A user-visible notice, e.g. "no songs found".
}

// RecommendationRouter sets up the routes for mood detection and playlist
// recommendation.
func RecommendationRouter(r *gin.RouterGroup) {
	r.GET("/moods", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"moods": model.MoodOptions()})
	})

	r.POST("/recommendations", func(c *gin.Context) {
		var req recommendationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		text := strings.TrimSpace(req.Text)
		manualMood := model.Mood(strings.ToLower(strings.TrimSpace(req.Mood)))
		if manualMood != "" && !model.IsValidMood(manualMood) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mood: " + string(manualMood)})
			return
		}

		// An empty submission with no mood choice is a user error, not a
		// default-mood request.
		if text == "" && manualMood == "" {
			c.JSON(http.StatusBadRequest, gin.H{"warning": msgEmptySubmission})
			return
		}

		result := state.recommendations.Run(c.Request.Context(), text, manualMood, req.Limit)

		out := recommendationResponse{
			DetectedEmotion: result.DetectedEmotion,
			DetectedMood:    result.DetectedMood,
			ActiveMood:      result.ActiveMood,
			Plan:            result.Plan,
		}
		if result.Plan.Kind == model.PlanKindNoResults {
			out.Message = msgNoSongs
		}
		c.JSON(http.StatusOK, out)
	})
}

// CapabilitiesRouter exposes which optional features this deployment offers,
// so the frontend can hide the microphone button when voice input is off.
func CapabilitiesRouter(r *gin.RouterGroup) {
	r.GET("/capabilities", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"voice_input": state.voiceEnabled})
	})
}

// TranscriptionRouter sets up the voice-input route. When voice input is
// disabled for this deployment the route answers 404, matching a frontend
// that never shows the microphone in the first place.
func TranscriptionRouter(r *gin.RouterGroup) {
	r.POST("/transcriptions", func(c *gin.Context) {
		if !state.voiceEnabled || state.transcriptionService == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "voice input is not available"})
			return
		}

		file, err := c.FormFile("clip")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing clip upload"})
			return
		}
		if file.Size > state.config.Voice.MaxClipSizeBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgBadClip})
			return
		}

		reader, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgBadClip})
			return
		}
		defer func() { _ = reader.Close() }()

		clip, err := io.ReadAll(reader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgBadClip})
			return
		}

		transcript, err := state.transcriptionService.Transcribe(c.Request.Context(), clip)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"text": transcript})
		case errors.Is(err, services.ErrNoSpeech):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msgNoSpeech})
		case errors.Is(err, services.ErrListenTimeout):
			c.JSON(http.StatusRequestTimeout, gin.H{"error": msgNoVoice})
		case errors.Is(err, services.ErrUnsupportedClip):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgBadClip})
		default:
			slog.Error("transcription failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgVoiceFailed})
		}
	})
}
