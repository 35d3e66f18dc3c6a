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

package commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
)

const embedURLBase = "https://www.youtube.com/embed"

// PlaylistPresenter turns a track result list into a presentation plan:
// an embedded player with a continuation queue when playable ids exist,
// a direct watch link when results came back without extractable ids,
// or a "no results" plan when the list is empty.
type PlaylistPresenter struct {
	cor.BaseCommand
}

// NewPlaylistPresenter is the constructor for the PlaylistPresenter command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputParamName: The context key where the plan is stored for the
//     API layer.
func NewPlaylistPresenter(name string, outputParamName string) *PlaylistPresenter {
	out := PlaylistPresenter{BaseCommand: *cor.NewBaseCommand(name)}
	out.OutputParamName = outputParamName
	return &out
}

// Execute builds the presentation plan and writes it to the output param.
func (p *PlaylistPresenter) Execute(context cor.Context) {
	tracks := context.Get(p.GetInputParam()).([]model.TrackResult)

	plan := BuildPlan(tracks)

	p.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(p.GetOutputParam(), plan)
	context.Add(cor.CtxOut, plan)
}

// BuildPlan derives the presentation plan for a normalized track list.
//
// The first track with an extractable playback id becomes the primary
// video; any remaining ids become the player's continuation queue. When
// no track yielded an id the plan falls back to a direct link at the
// first track's raw page link.
func BuildPlan(tracks []model.TrackResult) model.PresentationPlan {
	plan := model.PresentationPlan{
		ID:     uuid.NewString(),
		Tracks: tracks,
	}

	if len(tracks) == 0 {
		plan.Kind = model.PlanKindNoResults
		return plan
	}

	ids := make([]string, 0, len(tracks))
	for _, track := range tracks {
		if track.PlaybackID != "" {
			ids = append(ids, track.PlaybackID)
		}
	}

	if len(ids) == 0 {
		plan.Kind = model.PlanKindDirectLink
		plan.LinkURL = tracks[0].Link
		return plan
	}

	plan.Kind = model.PlanKindEmbed
	plan.PrimaryID = ids[0]
	plan.Autoplay = true
	if len(ids) > 1 {
		plan.Queue = strings.Join(ids[1:], ",")
	}

	embedURL := fmt.Sprintf("%s/%s?autoplay=1", embedURLBase, plan.PrimaryID)
	if plan.Queue != "" {
		embedURL = fmt.Sprintf("%s&playlist=%s", embedURL, plan.Queue)
	}
	plan.EmbedURL = embedURL
	return plan
}
