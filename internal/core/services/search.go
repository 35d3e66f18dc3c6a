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

// Package services contains the business logic for interacting with the
// external data sources. This file defines the TrackSearchService, the track
// search aggregator: it builds a search query from the active mood, asks the
// video search provider for ranked results, and normalizes each raw result
// into a uniform TrackResult record.
//
// Results are memoized for the process lifetime keyed by the exact
// (query, limit) pair. Stale results for an unchanged mood are acceptable and
// expected; the cache is never invalidated.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/prajyot2003/moodify/internal/core/model"
)

// playbackIDMarker is the literal substring identifying a canonical
// watch-page link. Everything between the marker and the next "&" is the
// playback id.
const playbackIDMarker = "watch?v="

// untitledPlaceholder is the title given to results the provider returned
// without one.
const untitledPlaceholder = "Untitled"

// RawVideo is one unprocessed entry from the video search provider: a title
// (possibly empty) and a watch-page link. Normalization into TrackResult
// happens in the aggregator so that every provider gets identical treatment.
type RawVideo struct {
	Title string // The raw title as the provider returned it.
	Link  string // The watch-page URL of the video.
}

// SearchProvider is the opaque video search collaborator: a query in, a
// ranked list of raw results out. The production implementation talks to the
// YouTube Data API; tests substitute fakes.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]RawVideo, error)
}

// TrackSearchService is the track search aggregator. It owns the query
// construction, the provider call, result normalization, and the
// process-lifetime memo cache.
type TrackSearchService struct {
	Provider    SearchProvider // The external video search provider.
	QuerySuffix string         // The fixed suffix appended to the mood (e.g. "songs playlist").

	mu    sync.RWMutex                   // Guards the memo cache.
	cache map[string][]model.TrackResult // Successful responses keyed by "query|limit".
}

// NewTrackSearchService constructs a TrackSearchService with an empty cache.
//
// Inputs:
//   - provider: The video search provider to query.
//   - querySuffix: The fixed text appended to the mood when building queries.
//
// Outputs:
//   - *TrackSearchService: The initialized service.
func NewTrackSearchService(provider SearchProvider, querySuffix string) *TrackSearchService {
	return &TrackSearchService{
		Provider:    provider,
		QuerySuffix: querySuffix,
		cache:       make(map[string][]model.TrackResult),
	}
}

// BuildQuery constructs the provider query for a mood by appending the fixed
// suffix, e.g. "chill songs playlist".
func (s *TrackSearchService) BuildQuery(mood model.Mood) string {
	return fmt.Sprintf("%s %s", mood, s.QuerySuffix)
}

// Search runs one provider query for the given mood and returns the
// normalized, provider-ordered track list. The provider is invoked once per
// call: no pagination, no retry. A provider failure degrades to an empty
// sequence so the presenter can answer "no songs found" instead of erroring.
//
// Successful responses are memoized by the exact (query, limit) pair for the
// process lifetime. Failures are not cached, so the next submission retries
// the provider.
//
// Inputs:
//   - ctx: The context for the request.
//   - mood: The active mood to search tracks for.
//   - limit: The maximum number of results to request.
//
// Outputs:
//   - []model.TrackResult: Normalized results in provider order; empty when
//     the provider failed or returned nothing.
//   - error: The provider error, for logging. The track list is always usable
//     even when this is non-nil.
func (s *TrackSearchService) Search(ctx context.Context, mood model.Mood, limit int) ([]model.TrackResult, error) {
	query := s.BuildQuery(mood)
	key := fmt.Sprintf("%s|%d", query, limit)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	raw, err := s.Provider.Search(ctx, query, limit)
	if err != nil {
		return []model.TrackResult{}, fmt.Errorf("track search for %q failed: %w", query, err)
	}

	tracks := make([]model.TrackResult, 0, len(raw))
	for _, video := range raw {
		tracks = append(tracks, Normalize(video))
	}

	s.mu.Lock()
	s.cache[key] = tracks
	s.mu.Unlock()

	return tracks, nil
}

// Normalize converts one raw provider entry into a uniform TrackResult:
// a missing title becomes the placeholder, the link passes through untouched,
// and the playback id is extracted when the link has the canonical shape.
// Records without a parseable playback id are kept; the presenter handles
// the absence.
func Normalize(video RawVideo) model.TrackResult {
	title := video.Title
	if title == "" {
		title = untitledPlaceholder
	}
	return model.TrackResult{
		Title:      title,
		Link:       video.Link,
		PlaybackID: ExtractPlaybackID(video.Link),
	}
}

// ExtractPlaybackID pulls the playback id out of a canonical watch-page
// link: the substring after the literal "watch?v=" marker, up to but not
// including the next "&". Links without the marker yield an empty id, which
// is a valid and expected state.
//
// Inputs:
//   - link: The watch-page URL to parse.
//
// Outputs:
//   - string: The playback id, or "" when the link has no canonical shape.
func ExtractPlaybackID(link string) string {
	idx := strings.Index(link, playbackIDMarker)
	if idx < 0 {
		return ""
	}
	id := link[idx+len(playbackIDMarker):]
	if amp := strings.Index(id, "&"); amp >= 0 {
		id = id[:amp]
	}
	return id
}
