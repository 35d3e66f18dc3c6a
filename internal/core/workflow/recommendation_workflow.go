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

// Package workflow defines the high-level business logic orchestrations,
// combining various commands into coherent pipelines. This file implements
// the recommendation workflow: text in, presentation plan out.
package workflow

import (
	"context"
	"text/template"

	"github.com/prajyot2003/moodify/internal/cloud"
	"github.com/prajyot2003/moodify/internal/core/commands"
	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
	"github.com/prajyot2003/moodify/internal/core/services"
)

// Context keys for the values the workflow seeds before execution and reads
// back after it. The intermediate commands also publish their results under
// these keys so the caller can report what was detected, not just the final
// plan.
const (
	PredictionParamName = "__prediction_output__"
	AutoMoodParamName   = "__auto_mood_output__"
	ManualMoodParamName = "__manual_mood_input__"
	ActiveMoodParamName = "__active_mood_output__"
	LimitParamName      = "__track_limit_input__"
	PlanParamName       = "__plan_output__"
)

// Result is what one workflow run hands back to the API layer.
type Result struct {
	DetectedEmotion *model.EmotionPrediction // The parsed prediction, nil when detection was skipped.
	DetectedMood    model.Mood               // The mood the mapping table produced, "" when detection was skipped.
	ActiveMood      model.Mood               // The mood the plan was actually built for.
	Plan            model.PresentationPlan   // The playlist presentation plan.
}

// RecommendationWorkflow orchestrates the full submission-to-playlist
// pipeline. It is structured as a Chain of Responsibility (cor.Chain)
// running six commands in sequence: classify the text, parse the prediction,
// map it to a mood, reconcile with the user's explicit choice, search
// tracks, and build the presentation plan.
//
// Blank text flows through the same chain: the classification commands skip
// themselves, the selector falls back to the manual choice or the default
// mood, and the rest of the pipeline proceeds normally.
type RecommendationWorkflow struct {
	cor.BaseCommand
	config          *cloud.Config
	generator       cloud.ContentGenerator
	searchService   *services.TrackSearchService
	emotionTemplate *template.Template
	chain           cor.Chain // The underlying chain of commands to be executed.
}

// Execute runs the workflow by invoking the underlying chain.
//
// Inputs:
//   - context: The chain of responsibility context for this execution.
func (w *RecommendationWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// Run is the request-scoped entry point used by the API layer. It builds a
// fresh pipeline context, seeds the inputs, executes the chain, and collects
// the outputs.
//
// Inputs:
//   - ctx: The standard Go context of the HTTP request.
//   - text: The user's submission text; may be blank.
//   - manualMood: The user's explicit mood choice; "" when none was made.
//   - limit: The maximum number of tracks to request.
//
// Outputs:
//   - *Result: The detection outcome and the presentation plan.
func (w *RecommendationWorkflow) Run(ctx context.Context, text string, manualMood model.Mood, limit int) *Result {
	pipelineCtx := cor.NewBaseContext()
	pipelineCtx.SetContext(ctx)
	pipelineCtx.Add(cor.CtxIn, text)
	pipelineCtx.Add(LimitParamName, limit)
	if manualMood != "" {
		pipelineCtx.Add(ManualMoodParamName, manualMood)
	}

	w.Execute(pipelineCtx)

	out := &Result{}
	if prediction, ok := pipelineCtx.Get(PredictionParamName).(*model.EmotionPrediction); ok {
		out.DetectedEmotion = prediction
	}
	if mood, ok := pipelineCtx.Get(AutoMoodParamName).(model.Mood); ok {
		out.DetectedMood = mood
	}
	if mood, ok := pipelineCtx.Get(ActiveMoodParamName).(model.Mood); ok {
		out.ActiveMood = mood
	}
	if plan, ok := pipelineCtx.Get(PlanParamName).(model.PresentationPlan); ok {
		out.Plan = plan
	}
	return out
}

// initializeChain builds the sequence of commands that make up this
// workflow. This method is called by the constructor.
func (w *RecommendationWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())

	// Step 1: Classify the submission text into an emotion. Skipped for
	// blank text; any model failure degrades to the neutral label.
	out.AddCommand(commands.NewEmotionClassifier("emotion-classifier", w.generator, w.emotionTemplate))

	// Step 2: Parse the raw JSON prediction into a struct and normalize
	// the label for the mapping table.
	out.AddCommand(commands.NewPredictionToStruct("prediction-to-struct", PredictionParamName))

	// Step 3: Translate the emotion into a mood via the fixed mapping
	// table.
	out.AddCommand(commands.NewMoodMapper("mood-mapper", AutoMoodParamName))

	// Step 4: Reconcile the detected mood with the user's explicit choice.
	// This command always runs, even when steps 1-3 were skipped.
	out.AddCommand(commands.NewMoodSelector("mood-selector", AutoMoodParamName, ManualMoodParamName, ActiveMoodParamName))

	// Step 5: Search tracks for the active mood. A provider failure is
	// absorbed into an empty result list.
	out.AddCommand(commands.NewTrackSearch("track-search", w.searchService, LimitParamName, w.config.YouTube.DefaultLimit))

	// Step 6: Turn the track list into a presentation plan.
	out.AddCommand(commands.NewPlaylistPresenter("playlist-presenter", PlanParamName))

	w.chain = out
}

// NewRecommendationPipeline is the constructor for the
// RecommendationWorkflow. It compiles the emotion prompt template, wires the
// search aggregator, and initializes the command chain.
//
// Inputs:
//   - config: The application's overall configuration.
//   - generator: The rate-limited generative model used for classification.
//   - searchService: The track search aggregator.
//
// Returns:
//   - A pointer to a fully initialized RecommendationWorkflow.
func NewRecommendationPipeline(
	config *cloud.Config,
	generator cloud.ContentGenerator,
	searchService *services.TrackSearchService) *RecommendationWorkflow {

	emotionTemplate, err := template.New("emotion-template").Parse(config.PromptTemplates.EmotionPrompt)
	if err != nil {
		panic(err) // The app cannot run without valid templates.
	}

	pipeline := &RecommendationWorkflow{
		BaseCommand:     *cor.NewBaseCommand("recommendation-pipeline"),
		config:          config,
		generator:       generator,
		searchService:   searchService,
		emotionTemplate: emotionTemplate,
	}
	pipeline.initializeChain()
	return pipeline
}
