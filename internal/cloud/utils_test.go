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

package cloud_test

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"

	test "github.com/prajyot2003/moodify/internal/testutil"
)

// The loader reads the base file first, then overlays the runtime file.
// Overridden values must win while untouched base values survive.
func TestLoadConfigOverlaysRuntimeFile(t *testing.T) {
	config := test.GetConfig()

	// Values the test overlay rewrites.
	assert.Equal(t, "moodify-test", config.Application.Name)
	assert.Equal(t, "test-project", config.Application.GoogleProjectId)
	assert.Equal(t, 3, config.YouTube.DefaultLimit)
	assert.Equal(t, 1, config.Voice.ListenSeconds)

	// Values only the base file defines.
	assert.Equal(t, "songs playlist", config.YouTube.QuerySuffix)
	assert.Equal(t, "us-central1", config.Application.GoogleLocation)
	assert.Equal(t, "SPACE_ID", config.Voice.DisableEnvVar)
}

func TestLoadConfigAgentModelOverlay(t *testing.T) {
	config := test.GetConfig()

	classifier, ok := config.AgentModels["emotion-classifier"]
	assert.True(t, ok)
	assert.Equal(t, 100, classifier.RateLimit)                   // overlay
	assert.Equal(t, "gemini-2.0-flash", classifier.Model)        // base
	assert.Equal(t, "application/json", classifier.OutputFormat) // base
}

// The shipped prompt templates must parse; a broken template panics the
// workflow constructor at startup.
func TestPromptTemplatesParse(t *testing.T) {
	config := test.GetConfig()

	assert.NotEqual(t, "", config.PromptTemplates.EmotionPrompt)
	assert.NotEqual(t, "", config.PromptTemplates.TranscribePrompt)

	_, err := template.New("emotion").Parse(config.PromptTemplates.EmotionPrompt)
	test.HandleErr(err, t)
}
