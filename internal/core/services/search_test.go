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

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prajyot2003/moodify/internal/core/model"
	"github.com/prajyot2003/moodify/internal/core/services"
)

// countingProvider records how often it was queried so memoization is
// observable.
type countingProvider struct {
	calls  int
	videos []services.RawVideo
	err    error
}

func (p *countingProvider) Search(_ context.Context, _ string, _ int) ([]services.RawVideo, error) {
	p.calls++
	return p.videos, p.err
}

func TestExtractPlaybackID(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://www.youtube.com/watch?v=ABC123&list=xyz", "ABC123"},
		{"https://www.youtube.com/watch?v=ABC123", "ABC123"},
		{"https://example.com/video/123", ""},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, services.ExtractPlaybackID(tc.link), tc.link)
	}
}

func TestNormalizeDefaultsTitle(t *testing.T) {
	track := services.Normalize(services.RawVideo{Link: "https://example.com/v"})

	assert.Equal(t, "Untitled", track.Title)
	assert.Equal(t, "https://example.com/v", track.Link)
	assert.Equal(t, "", track.PlaybackID)
}

func TestBuildQueryAppendsSuffix(t *testing.T) {
	service := services.NewTrackSearchService(&countingProvider{}, "songs playlist")
	assert.Equal(t, "chill songs playlist", service.BuildQuery(model.MoodChill))
}

func TestSearchMemoizesSuccesses(t *testing.T) {
	provider := &countingProvider{videos: []services.RawVideo{
		{Title: "Track", Link: "https://www.youtube.com/watch?v=one"},
	}}
	service := services.NewTrackSearchService(provider, "songs playlist")

	first, err := service.Search(context.Background(), model.MoodHappy, 5)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(first))

	second, err := service.Search(context.Background(), model.MoodHappy, 5)
	assert.Nil(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)

	// A different limit is a different cache key.
	_, err = service.Search(context.Background(), model.MoodHappy, 10)
	assert.Nil(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestSearchDoesNotCacheFailures(t *testing.T) {
	provider := &countingProvider{err: errors.New("backend down")}
	service := services.NewTrackSearchService(provider, "songs playlist")

	tracks, err := service.Search(context.Background(), model.MoodSad, 5)
	assert.NotNil(t, err)
	assert.Equal(t, 0, len(tracks))

	_, _ = service.Search(context.Background(), model.MoodSad, 5)
	assert.Equal(t, 2, provider.calls)
}

func TestSearchKeepsProviderOrder(t *testing.T) {
	provider := &countingProvider{videos: []services.RawVideo{
		{Title: "first", Link: "https://www.youtube.com/watch?v=a"},
		{Title: "second", Link: "https://www.youtube.com/watch?v=b&t=10"},
		{Title: "third", Link: "https://example.com/no-id"},
	}}
	service := services.NewTrackSearchService(provider, "songs playlist")

	tracks, err := service.Search(context.Background(), model.MoodFocus, 3)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(tracks))
	assert.Equal(t, "a", tracks[0].PlaybackID)
	assert.Equal(t, "b", tracks[1].PlaybackID)
	assert.Equal(t, "", tracks[2].PlaybackID)
}
