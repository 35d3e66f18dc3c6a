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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command that invokes the pretrained model to classify the user's text into
// an emotion.
//
// Logic flow:
//  1. The command receives the raw submission text from the context. Blank
//     input makes the command non-executable: classification is only
//     meaningful for non-empty text, so the whole detection leg is skipped.
//  2. It builds a prompt from a Go template, populated with the closed label
//     vocabulary and a few-shot JSON example of the expected answer shape.
//  3. It sends the prompt to the generative model and receives the raw JSON
//     string of the single top-ranked prediction.
//  4. On any model failure it emits the neutral fallback JSON instead —
//     classification is best-effort and never propagates an error.
//  5. The raw JSON string is placed in the context for the parse command.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"go.opentelemetry.io/otel/metric"

	"github.com/prajyot2003/moodify/internal/cloud"
	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
)

// EmotionClassifier is a command that classifies free text into a single
// emotion label using the generative model.
type EmotionClassifier struct {
	cor.BaseCommand
	generator                cloud.ContentGenerator // The rate-limited generative model.
	template                 *template.Template     // The Go template for building the classification prompt.
	geminiInputTokenCounter  metric.Int64Counter    // OTel counter for input tokens.
	geminiOutputTokenCounter metric.Int64Counter    // OTel counter for output tokens.
}

// NewEmotionClassifier is the constructor for the EmotionClassifier command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - generator: The rate-limited generative model wrapper.
//   - template: A parsed Go template for the classification prompt.
//
// Outputs:
//   - *EmotionClassifier: The instantiated command with telemetry counters.
func NewEmotionClassifier(
	name string,
	generator cloud.ContentGenerator,
	template *template.Template) *EmotionClassifier {

	out := &EmotionClassifier{
		BaseCommand: *cor.NewBaseCommand(name),
		generator:   generator,
		template:    template,
	}
	out.geminiInputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.input", out.GetName()))
	out.geminiOutputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.output", out.GetName()))
	return out
}

// IsExecutable requires a non-blank text input: whitespace-only submissions
// skip classification entirely and the pipeline falls through to the manual
// mood selection.
func (t *EmotionClassifier) IsExecutable(context cor.Context) bool {
	if context == nil || context.GetContext() == nil {
		return false
	}
	text, ok := context.Get(t.GetInputParam()).(string)
	return ok && strings.TrimSpace(text) != ""
}

// GenerateParams creates the dynamic data injected into the prompt template.
//
// Inputs:
//   - text: The user's submission text to classify.
//
// Outputs:
//   - map[string]interface{}: Keys and values for template substitution.
func (t *EmotionClassifier) GenerateParams(text string) map[string]interface{} {
	params := make(map[string]interface{})

	// Enumerate the closed label vocabulary so the model cannot invent one.
	labels := []string{
		string(model.EmotionJoy), string(model.EmotionLove), string(model.EmotionAnger),
		string(model.EmotionSadness), string(model.EmotionFear), string(model.EmotionSurprise),
		string(model.EmotionDisgust), string(model.EmotionNeutral),
	}
	params["LABELS"] = strings.Join(labels, ", ")

	// A well-formed example of the answer keeps the output parsable
	// (few-shot prompting).
	examplePrediction, _ := json.Marshal(model.GetExamplePrediction())
	params["EXAMPLE_JSON"] = string(examplePrediction)

	params["TEXT"] = text
	return params
}

// Execute runs the classification and emits the raw JSON prediction string.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (t *EmotionClassifier) Execute(context cor.Context) {
	text := context.Get(t.GetInputParam()).(string)

	var prompt bytes.Buffer
	if err := t.template.Execute(&prompt, t.GenerateParams(text)); err != nil {
		// A template failure is a programming error, not a model hiccup,
		// but the user still gets the neutral default rather than a crash.
		t.GetErrorCounter().Add(context.GetContext(), 1)
		slog.Warn("emotion prompt template failed", "error", err)
		context.Add(t.GetOutputParam(), neutralFallbackJSON())
		return
	}

	raw, err := cloud.GenerateTextResponse(
		context.GetContext(),
		t.geminiInputTokenCounter,
		t.geminiOutputTokenCounter,
		t.generator,
		cloud.NewTextContent(prompt.String()))
	if err != nil {
		// Best-effort classification: degrade to the neutral label and
		// never surface the failure to the user.
		t.GetErrorCounter().Add(context.GetContext(), 1)
		slog.Warn("emotion classification failed, using neutral", "error", err)
		context.Add(t.GetOutputParam(), neutralFallbackJSON())
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), raw)
}

// neutralFallbackJSON renders the neutral prediction as the same raw JSON
// shape the model would have produced, so the parse command downstream does
// not need a special case.
func neutralFallbackJSON() string {
	out, _ := json.Marshal(model.NeutralPrediction())
	return string(out)
}
