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
// track search step: it takes the active mood and asks the track search
// aggregator for the normalized result list.
//
// A provider failure is logged and degraded to an empty list here, so the
// presenter downstream answers "no songs found" instead of the pipeline
// erroring out.
package commands

import (
	"log/slog"

	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
	"github.com/prajyot2003/moodify/internal/core/services"
)

// TrackSearch is a command that fetches tracks for the active mood.
type TrackSearch struct {
	cor.BaseCommand
	searchService  *services.TrackSearchService // The aggregator owning query building, caching, and normalization.
	limitParamName string                       // Context key holding the per-request result limit.
	defaultLimit   int                          // Result limit used when the request does not carry one.
}

// NewTrackSearch is the constructor for the TrackSearch command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - searchService: The track search aggregator.
//   - limitParamName: The context key the API layer seeds with the limit.
//   - defaultLimit: The limit used when the context carries none.
//
// Outputs:
//   - *TrackSearch: The instantiated command.
func NewTrackSearch(name string, searchService *services.TrackSearchService, limitParamName string, defaultLimit int) *TrackSearch {
	return &TrackSearch{
		BaseCommand:    *cor.NewBaseCommand(name),
		searchService:  searchService,
		limitParamName: limitParamName,
		defaultLimit:   defaultLimit,
	}
}

// Execute searches tracks for the active mood and emits the normalized list.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (t *TrackSearch) Execute(context cor.Context) {
	mood := context.Get(t.GetInputParam()).(model.Mood)

	limit := t.defaultLimit
	if v, ok := context.Get(t.limitParamName).(int); ok && v > 0 {
		limit = v
	}

	tracks, err := t.searchService.Search(context.GetContext(), mood, limit)
	if err != nil {
		// Degrade to "no results": the presenter turns an empty list into
		// the user-facing "no songs found" state.
		t.GetErrorCounter().Add(context.GetContext(), 1)
		slog.Warn("track search failed", "mood", mood, "error", err)
	} else {
		t.GetSuccessCounter().Add(context.GetContext(), 1)
	}

	context.Add(t.GetOutputParam(), tracks)
}
