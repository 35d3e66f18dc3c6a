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

// Package cloud provides the clients for the external providers. This file
// initializes and holds the client objects for the two outbound dependencies:
// the Generative AI service (emotion classification and voice transcription)
// and the YouTube Data API (track search). It acts as a small dependency
// injection container: one ServiceClients struct is built at startup and
// shared for the process lifetime.
//
// Logic flow:
//  1. NewServiceClients is called once at application startup with the
//     loaded configuration.
//  2. It creates the genai client against Vertex AI and the YouTube service
//     with the configured API key.
//  3. It reads the agent model configuration and wraps each named model in a
//     rate-limited QuotaAwareGenerativeAIModel.
//  4. The resulting struct is read-only after population and safe for
//     concurrent use.
//
// Structs:
//   - ServiceClients: The container of all initialized external clients.
//
// Functions:
//   - NewServiceClients: The factory that builds and configures the clients.
package cloud

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
	"google.golang.org/genai"
)

// ServiceClients is the central container for every client that talks to an
// external service. It is created once and treated as immutable afterwards.
type ServiceClients struct {
	GenAIClient    *genai.Client                           // Client for the Generative AI service (Vertex AI).
	YouTubeService *youtube.Service                        // Client for the YouTube Data API v3.
	AgentModels    map[string]*QuotaAwareGenerativeAIModel // Configured, rate-limited models keyed by logical name.
}

// NewServiceClients initializes the external service clients from the
// application configuration. It is the single entry point for setting up the
// process's outbound dependencies.
//
// Inputs:
//   - ctx: The root context for the application, bounding client lifecycles.
//   - config: The loaded application configuration.
//
// Outputs:
//   - *ServiceClients: The fully initialized client container.
//   - error: An error when any client fails to initialize.
func NewServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	// The genai client authenticates through Application Default Credentials
	// against the configured project and location.
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	// The YouTube Data API only needs an API key for search.
	yt, err := youtube.NewService(ctx, option.WithAPIKey(config.YouTube.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	// Wrap every configured agent model with its generation settings and a
	// rate limiter.
	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey := range config.AgentModels {
		values := config.AgentModels[amKey]
		generateConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(generateConfig, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		GenAIClient:    gc,
		YouTubeService: yt,
		AgentModels:    agentModels,
	}, nil
}
