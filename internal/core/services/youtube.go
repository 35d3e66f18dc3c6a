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
// external data sources. This file implements the production SearchProvider
// backed by the YouTube Data API v3. The provider is deliberately thin: it
// issues one search call and maps each item to a raw (title, link) pair,
// leaving all normalization to the aggregator.
package services

import (
	"context"
	"fmt"

	"google.golang.org/api/youtube/v3"
)

// watchPageURLFormat is the canonical watch-page link shape for a video id.
const watchPageURLFormat = "https://www.youtube.com/watch?v=%s"

// YouTubeSearchProvider implements SearchProvider against the YouTube Data
// API v3 search endpoint.
type YouTubeSearchProvider struct {
	Service *youtube.Service // The authenticated YouTube API client.
}

// NewYouTubeSearchProvider constructs a provider over an initialized YouTube
// service client.
func NewYouTubeSearchProvider(service *youtube.Service) *YouTubeSearchProvider {
	return &YouTubeSearchProvider{Service: service}
}

// Search issues one video search call and returns the results in the API's
// ranking order.
//
// Inputs:
//   - ctx: The context for the request.
//   - query: The full query string (mood plus suffix).
//   - limit: The maximum number of results to request.
//
// Outputs:
//   - []RawVideo: One entry per returned video, in response order.
//   - error: An error when the API call fails.
func (p *YouTubeSearchProvider) Search(ctx context.Context, query string, limit int) ([]RawVideo, error) {
	call := p.Service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	out := make([]RawVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			// Playlists and channels can slip into search results; tracks
			// require a video id to build a watch-page link.
			continue
		}
		title := ""
		if item.Snippet != nil {
			title = item.Snippet.Title
		}
		out = append(out, RawVideo{
			Title: title,
			Link:  fmt.Sprintf(watchPageURLFormat, item.Id.VideoId),
		})
	}
	return out, nil
}
