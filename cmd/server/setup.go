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
	"log"
	"os"
	"time"

	"github.com/prajyot2003/moodify/internal/cloud"
	"github.com/prajyot2003/moodify/internal/core/services"
	"github.com/prajyot2003/moodify/internal/core/workflow"
)

// emotionAgentModelName is the logical name of the agent model configured
// for emotion classification and voice transcription.
const emotionAgentModelName = "emotion-classifier"

// StateManager holds the shared components for the application. It is
// populated once by InitState and read-only afterwards.
type StateManager struct {
	config               *cloud.Config
	cloud                *cloud.ServiceClients
	recommendations      *workflow.RecommendationWorkflow
	transcriptionService *services.TranscriptionService
	voiceEnabled         bool
}

var state = &StateManager{}

// SetupOS points the configuration loader at the local configs directory
// when the environment does not already say where to look.
func SetupOS() (err error) {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		err = os.Setenv(cloud.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig is a singleton accessor for the application configuration,
// loading the TOML files on first use.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup os: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(config)
		state.config = config
	}
	return state.config
}

// voiceInputEnabled decides the voice capability once at startup. Voice
// input is a local capability: hosted environments advertise themselves
// through the configured environment variable, and its presence disables
// the feature for the whole process lifetime. An unset variable name means
// no deployment marker exists and voice stays on.
func voiceInputEnabled(disableEnvVar string) bool {
	if disableEnvVar == "" {
		return true
	}
	_, hosted := os.LookupEnv(disableEnvVar)
	return !hosted
}

// InitState initializes the application state and dependencies: the external
// service clients, the recommendation workflow, and the optional voice
// transcription service.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	generator := cloudClients.AgentModels[emotionAgentModelName]
	if generator == nil {
		log.Fatalf("agent model %q is not configured\n", emotionAgentModelName)
	}

	searchService := services.NewTrackSearchService(
		services.NewYouTubeSearchProvider(cloudClients.YouTubeService),
		config.YouTube.QuerySuffix,
	)

	state.recommendations = workflow.NewRecommendationPipeline(config, generator, searchService)

	state.voiceEnabled = voiceInputEnabled(config.Voice.DisableEnvVar)
	if state.voiceEnabled {
		state.transcriptionService = services.NewTranscriptionService(
			generator,
			config.PromptTemplates.TranscribePrompt,
			time.Duration(config.Voice.ListenSeconds)*time.Second,
		)
	}
}
