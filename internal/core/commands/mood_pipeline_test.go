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

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prajyot2003/moodify/internal/core/commands"
	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
	"github.com/prajyot2003/moodify/internal/core/services"
	test "github.com/prajyot2003/moodify/internal/testutil"
)

func TestPredictionToStructParsesModelOutput(t *testing.T) {
	parse := commands.NewPredictionToStruct("prediction-to-struct", "prediction")

	ctx := newPipelineContext()
	ctx.Add(cor.CtxIn, test.GetTestPredictionText())
	parse.Execute(ctx)

	prediction := ctx.Get("prediction").(*model.EmotionPrediction)
	assert.Equal(t, model.EmotionJoy, prediction.Label)
	assert.Equal(t, 0.9731, prediction.Score)
}

func TestPredictionToStructNormalizesLabel(t *testing.T) {
	parse := commands.NewPredictionToStruct("prediction-to-struct", "prediction")

	ctx := newPipelineContext()
	ctx.Add(cor.CtxIn, `{"label": " Sadness ", "score": 0.88}`)
	parse.Execute(ctx)

	prediction := ctx.Get("prediction").(*model.EmotionPrediction)
	assert.Equal(t, model.EmotionSadness, prediction.Label)
	assert.Equal(t, float64(0.88), prediction.Score)
}

func TestPredictionToStructDegradesToNeutral(t *testing.T) {
	parse := commands.NewPredictionToStruct("prediction-to-struct", "prediction")

	// A response truncated at the token limit, the usual malformed shape.
	ctx := newPipelineContext()
	ctx.Add(cor.CtxIn, test.GetTestMalformedPredictionText())
	parse.Execute(ctx)

	prediction := ctx.Get("prediction").(*model.EmotionPrediction)
	assert.Equal(t, model.EmotionNeutral, prediction.Label)
	assert.False(t, ctx.HasErrors())
}

func TestMoodMapperUsesMappingTable(t *testing.T) {
	mapper := commands.NewMoodMapper("mood-mapper", "auto_mood")

	ctx := newPipelineContext()
	ctx.Add(cor.CtxIn, &model.EmotionPrediction{Label: model.EmotionAnger, Score: 0.7})
	mapper.Execute(ctx)

	assert.Equal(t, model.MoodCalm, ctx.Get("auto_mood"))
	assert.Equal(t, model.MoodCalm, ctx.Get(cor.CtxOut))
}

func TestMoodSelectorManualWins(t *testing.T) {
	selector := commands.NewMoodSelector("mood-selector", "auto_mood", "manual_mood", "active_mood")

	ctx := newPipelineContext()
	ctx.Add("auto_mood", model.MoodSad)
	ctx.Add("manual_mood", model.MoodParty)
	selector.Execute(ctx)

	assert.Equal(t, model.MoodParty, ctx.Get("active_mood"))
}

func TestMoodSelectorDefaultsToChill(t *testing.T) {
	selector := commands.NewMoodSelector("mood-selector", "auto_mood", "manual_mood", "active_mood")

	// Nothing seeded: the blank-text path where detection was skipped and
	// the user picked no mood.
	ctx := newPipelineContext()
	assert.True(t, selector.IsExecutable(ctx))
	selector.Execute(ctx)

	assert.Equal(t, model.MoodChill, ctx.Get("active_mood"))
}

// fakeSearchProvider returns canned raw videos or a canned error.
type fakeSearchProvider struct {
	videos []services.RawVideo
	err    error
}

func (f *fakeSearchProvider) Search(_ context.Context, _ string, _ int) ([]services.RawVideo, error) {
	return f.videos, f.err
}

func TestTrackSearchEmitsNormalizedTracks(t *testing.T) {
	provider := &fakeSearchProvider{videos: []services.RawVideo{
		{Title: "Calm Piano", Link: "https://www.youtube.com/watch?v=abc123&list=xyz"},
	}}
	search := commands.NewTrackSearch("track-search",
		services.NewTrackSearchService(provider, "songs playlist"), "limit", 5)

	ctx := newPipelineContext()
	ctx.Add(cor.CtxIn, model.MoodCalm)
	search.Execute(ctx)

	tracks := ctx.Get(cor.CtxOut).([]model.TrackResult)
	assert.Equal(t, 1, len(tracks))
	assert.Equal(t, "abc123", tracks[0].PlaybackID)
}

func TestTrackSearchDegradesProviderFailureToEmpty(t *testing.T) {
	provider := &fakeSearchProvider{err: errors.New("quota exceeded")}
	search := commands.NewTrackSearch("track-search",
		services.NewTrackSearchService(provider, "songs playlist"), "limit", 5)

	ctx := newPipelineContext()
	ctx.Add(cor.CtxIn, model.MoodHappy)
	search.Execute(ctx)

	tracks := ctx.Get(cor.CtxOut).([]model.TrackResult)
	assert.Equal(t, 0, len(tracks))
	assert.False(t, ctx.HasErrors())
}
