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

package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/prajyot2003/moodify/internal/cloud"
	"github.com/prajyot2003/moodify/internal/core/model"
	"github.com/prajyot2003/moodify/internal/core/services"
	"github.com/prajyot2003/moodify/internal/core/workflow"
)

// fakeGenerator returns a canned prediction string or a canned error.
type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ []*genai.Content) (*genai.GenerateContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}}},
		},
	}, nil
}

// fakeProvider returns canned raw videos and records the queries it saw.
type fakeProvider struct {
	videos  []services.RawVideo
	err     error
	queries []string
}

func (f *fakeProvider) Search(_ context.Context, query string, _ int) ([]services.RawVideo, error) {
	f.queries = append(f.queries, query)
	return f.videos, f.err
}

func testConfig() *cloud.Config {
	config := cloud.NewConfig()
	config.PromptTemplates.EmotionPrompt = "Labels: {{.LABELS}}\nExample: {{.EXAMPLE_JSON}}\nText: {{.TEXT}}"
	config.YouTube.QuerySuffix = "songs playlist"
	config.YouTube.DefaultLimit = 5
	return config
}

func newPipeline(generator cloud.ContentGenerator, provider services.SearchProvider) *workflow.RecommendationWorkflow {
	config := testConfig()
	return workflow.NewRecommendationPipeline(
		config,
		generator,
		services.NewTrackSearchService(provider, config.YouTube.QuerySuffix))
}

func TestRunDetectsMoodAndBuildsEmbedPlan(t *testing.T) {
	provider := &fakeProvider{videos: []services.RawVideo{
		{Title: "Happy One", Link: "https://www.youtube.com/watch?v=h1"},
		{Title: "Happy Two", Link: "https://www.youtube.com/watch?v=h2&list=x"},
	}}
	pipeline := newPipeline(&fakeGenerator{text: `{"label": "joy", "score": 0.97}`}, provider)

	result := pipeline.Run(context.Background(), "best day ever", "", 5)

	assert.Equal(t, model.EmotionJoy, result.DetectedEmotion.Label)
	assert.Equal(t, model.MoodHappy, result.DetectedMood)
	assert.Equal(t, model.MoodHappy, result.ActiveMood)
	assert.Equal(t, []string{"happy songs playlist"}, provider.queries)

	assert.Equal(t, model.PlanKindEmbed, result.Plan.Kind)
	assert.Equal(t, "h1", result.Plan.PrimaryID)
	assert.Equal(t, "h2", result.Plan.Queue)
	assert.Equal(t, "https://www.youtube.com/embed/h1?autoplay=1&playlist=h2", result.Plan.EmbedURL)
}

func TestRunManualMoodOverridesDetection(t *testing.T) {
	provider := &fakeProvider{videos: []services.RawVideo{
		{Title: "Track", Link: "https://www.youtube.com/watch?v=t1"},
	}}
	pipeline := newPipeline(&fakeGenerator{text: `{"label": "sadness", "score": 0.9}`}, provider)

	result := pipeline.Run(context.Background(), "rough week honestly", model.MoodParty, 5)

	assert.Equal(t, model.MoodSad, result.DetectedMood)
	assert.Equal(t, model.MoodParty, result.ActiveMood)
	assert.Equal(t, []string{"party songs playlist"}, provider.queries)
}

func TestRunBlankTextSkipsDetection(t *testing.T) {
	provider := &fakeProvider{videos: []services.RawVideo{
		{Title: "Track", Link: "https://www.youtube.com/watch?v=t1"},
	}}
	generator := &fakeGenerator{err: errors.New("must not be called")}
	pipeline := newPipeline(generator, provider)

	result := pipeline.Run(context.Background(), "   ", model.MoodLofi, 5)

	assert.Nil(t, result.DetectedEmotion)
	assert.Equal(t, model.Mood(""), result.DetectedMood)
	assert.Equal(t, model.MoodLofi, result.ActiveMood)
	assert.Equal(t, model.PlanKindEmbed, result.Plan.Kind)
}

func TestRunBlankTextNoManualMoodDefaultsToChill(t *testing.T) {
	provider := &fakeProvider{videos: []services.RawVideo{}}
	pipeline := newPipeline(&fakeGenerator{text: "unused"}, provider)

	result := pipeline.Run(context.Background(), "", "", 5)

	assert.Equal(t, model.MoodChill, result.ActiveMood)
	assert.Equal(t, []string{"chill songs playlist"}, provider.queries)
	assert.Equal(t, model.PlanKindNoResults, result.Plan.Kind)
}

func TestRunClassifierFailureFallsBackToChill(t *testing.T) {
	provider := &fakeProvider{videos: []services.RawVideo{
		{Title: "Track", Link: "https://www.youtube.com/watch?v=t1"},
	}}
	pipeline := newPipeline(&fakeGenerator{err: errors.New("model down")}, provider)

	result := pipeline.Run(context.Background(), "some text", "", 5)

	assert.Equal(t, model.EmotionNeutral, result.DetectedEmotion.Label)
	assert.Equal(t, model.MoodChill, result.DetectedMood)
	assert.Equal(t, model.MoodChill, result.ActiveMood)
}

func TestRunProviderFailureYieldsNoResultsPlan(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	pipeline := newPipeline(&fakeGenerator{text: `{"label": "joy", "score": 0.9}`}, provider)

	result := pipeline.Run(context.Background(), "great day", "", 5)

	assert.Equal(t, model.MoodHappy, result.ActiveMood)
	assert.Equal(t, model.PlanKindNoResults, result.Plan.Kind)
}
