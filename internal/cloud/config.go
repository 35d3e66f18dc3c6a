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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, along with the clients for the two external
// providers the service depends on: the pretrained generative model used for
// emotion classification and voice transcription, and the YouTube Data API
// used for track search.
//
// This file centralizes all configuration-related structs.
//
// Structs:
//   - PromptTemplates: Text templates for the prompts sent to the GenAI model.
//   - VertexAiLLMModel: Configuration for a Vertex AI model.
//   - YouTubeSearch: Configuration for the YouTube search provider.
//   - Voice: Configuration for the optional voice-input capability.
//   - Config: The top-level struct aggregating all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings defines the default content safety thresholds for the
// GenAI model. The classifier reads free-form descriptions of the user's
// mood, which can legitimately contain dark or angry language, so every
// category is configured to pass through without being blocked.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// PromptTemplates holds the templates for the prompts sent to the model.
type PromptTemplates struct {
	EmotionPrompt    string `toml:"emotion"`    // The template for the single-label emotion classification prompt.
	TranscribePrompt string `toml:"transcribe"` // The prompt instructing the model to transcribe a voice clip verbatim.
}

// VertexAiLLMModel represents the configuration for a Vertex AI model.
type VertexAiLLMModel struct {
	Model              string  `toml:"model"`               // The name of the Vertex AI model.
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the model.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the model.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the model.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the model.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the model output.
	OutputFormat       string  `toml:"output_format"`       // The desired output MIME type (e.g. "application/json").
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the model in requests per second.
}

// YouTubeSearch represents the configuration for the track search provider.
type YouTubeSearch struct {
	APIKey       string `toml:"api_key"`       // The YouTube Data API v3 key.
	QuerySuffix  string `toml:"query_suffix"`  // The fixed suffix appended to the mood, e.g. "songs playlist".
	DefaultLimit int    `toml:"default_limit"` // How many results to request when the caller does not say.
}

// Voice represents the configuration for the optional voice-input step.
// Voice input is a local capability: it is disabled entirely when the
// hosted-environment variable named by DisableEnvVar is present at startup.
type Voice struct {
	DisableEnvVar    string `toml:"disable_env_var"`    // Env var whose presence disables voice input (e.g. "SPACE_ID").
	ListenSeconds    int    `toml:"listen_seconds"`     // The bounded listen window for transcribing one clip.
	MaxClipSizeBytes int64  `toml:"max_clip_size_bytes"` // Upper bound on an uploaded voice clip.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It is the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project ID hosting the Vertex AI model.
		GoogleLocation  string `toml:"location"`          // The Google Cloud location.
		Port            int    `toml:"port"`              // The TCP port the HTTP server listens on.
	} `toml:"application"`
	PromptTemplates PromptTemplates             `toml:"prompt_templates"` // Prompt templates configuration.
	YouTube         YouTubeSearch               `toml:"youtube"`          // Track search provider configuration.
	Voice           Voice                       `toml:"voice"`            // Voice input configuration.
	AgentModels     map[string]VertexAiLLMModel `toml:"agent_models"`     // Vertex AI models keyed by a logical name (e.g. "emotion-classifier").
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The maps must be initialized up front so the TOML decoder can
// populate them without nil map panics.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]VertexAiLLMModel),
	}
}
