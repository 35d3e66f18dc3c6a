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
// contains general-purpose utilities supporting the package: the hierarchical
// configuration loader and the helper for extracting a text response from the
// generative model.
//
// Functions:
//   - fileExists: Checks whether a file exists.
//   - LoadConfig: Hierarchical configuration loader. Reads a base TOML file,
//     then overlays an environment-specific file (.env.local.toml,
//     .env.test.toml, ...) selected by an environment variable.
//   - GenerateTextResponse: Wrapper for a model call that flattens the
//     response candidates into one string and records token-usage metrics.
//   - NewTextContent: Factory for a plain-text prompt content list.
package cloud

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/BurntSushi/toml"
	"google.golang.org/genai"
)

// Constants used for configuration loading.
const (
	ConfigFileBaseName  = ".env"                  // The base name for configuration files (e.g. ".env.toml").
	ConfigFileExtension = ".toml"                 // The file extension for configuration files.
	ConfigSeparator     = "."                     // The separator used in config file names (e.g. ".env.local.toml").
	EnvConfigFilePrefix = "MOODIFY_CONFIG_PREFIX" // The environment variable naming the config directory.
	EnvConfigRuntime    = "MOODIFY_RUNTIME"       // The environment variable naming the runtime (e.g. "local", "test").
)

// fileExists checks whether a file or directory exists at the given path.
//
// Inputs:
//   - in: The path to check.
//
// Outputs:
//   - bool: True when the file exists.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides hierarchical configuration loading. It first decodes a
// base configuration file and then overlays an environment-specific file, so
// that local and test runs can override individual values without copying the
// whole configuration.
//
// Inputs:
//   - baseConfig: A pointer to the target configuration struct populated from
//     the TOML files.
func LoadConfig(baseConfig interface{}) {
	// The directory holding the config files, from the environment.
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	// The runtime environment, defaulting to "test" when unset.
	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	// e.g. "configs/.env.toml"
	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	// e.g. "configs/.env.local.toml"
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		_, err := toml.DecodeFile(baseConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	// Values in the environment-specific file overwrite the base values.
	if fileExists(envConfigFileName) {
		_, err := toml.DecodeFile(envConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// GenerateTextResponse executes a generation request and flattens the model's
// answer into a single string. Token usage is recorded on the supplied
// counters when the model reports it. Markdown JSON fences are stripped so
// that a ```json ... ``` wrapped answer parses cleanly downstream.
//
// Inputs:
//   - ctx: The context for the request.
//   - inputTokenCounter: OTel counter for prompt tokens used.
//   - outputTokenCounter: OTel counter for response tokens generated.
//   - generator: The model to invoke; retries and rate limiting live behind
//     this interface.
//   - content: The prompt content parts.
//
// Outputs:
//   - string: The concatenated text of all candidates, fences stripped.
//   - error: An error when the generation call fails.
func GenerateTextResponse(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	generator ContentGenerator,
	content []*genai.Content) (value string, err error) {
	resp, err := generator.GenerateContent(ctx, content)
	if err != nil {
		return "", err
	}

	if resp.UsageMetadata != nil {
		inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				builder.WriteString(part.Text)
			}
		}
	}
	value = strings.TrimSpace(builder.String())
	value = strings.TrimPrefix(value, "```json")
	value = strings.TrimSuffix(value, "```")
	return strings.TrimSpace(value), nil
}

// NewTextContent is a small factory for a plain-text prompt.
//
// Inputs:
//   - in: The text of the prompt.
//
// Outputs:
//   - []*genai.Content: A single-entry content list carrying the text.
func NewTextContent(in string) []*genai.Content {
	return genai.Text(in)
}
