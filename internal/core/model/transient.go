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

// Package model defines the core data structures for the application.
// This file, `transient.go`, contains the request-scoped objects that flow
// through the recommendation pipeline. Nothing here is persisted: every
// struct is created while answering one user submission, held in memory for
// the duration of rendering the response, and discarded.
package model

// EmotionPrediction is the structured form of the classifier's top-ranked
// prediction. It is parsed from the raw JSON returned by the generative
// model. Score is informational only; no confidence threshold is enforced.
type EmotionPrediction struct {
	Label EmotionLabel `json:"label"` // The predicted emotion, already lowercased.
	Score float64      `json:"score"` // The model's confidence in the prediction, 0..1.
}

// TrackResult is one normalized entry from the video search provider.
// PlaybackID is present only when the link matches the canonical watch-page
// URL shape; an empty PlaybackID is a valid, expected state, not an error.
type TrackResult struct {
	Title      string `json:"title"`                 // The video title; "Untitled" when the provider omits one.
	Link       string `json:"link"`                  // The watch-page URL of the video.
	PlaybackID string `json:"playback_id,omitempty"` // The id extracted from a "watch?v=" link, if any.
}

// Plan kinds emitted by the playlist presenter. Exactly one of these is set
// on every PresentationPlan.
const (
	PlanKindEmbed      = "embed"       // An embeddable gapless playlist (primary id + optional queue).
	PlanKindDirectLink = "direct_link" // A single direct video link; no embed possible.
	PlanKindNoResults  = "no_results"  // The search returned nothing; the caller shows an error state.
)

// PresentationPlan is the playlist presenter's decision about how to render
// a search result set. It either carries an embeddable playlist (primary id,
// optional continuation queue, autoplay flag), a single direct link fallback,
// or a "no results" signal. The full browse list is attached regardless of
// which primary plan was chosen.
type PresentationPlan struct {
	ID        string        `json:"id"`                   // A unique identifier for this plan, for client-side correlation.
	Kind      string        `json:"kind"`                 // One of the PlanKind constants.
	EmbedURL  string        `json:"embed_url,omitempty"`  // The full embed URL when Kind is PlanKindEmbed.
	PrimaryID string        `json:"primary_id,omitempty"` // The playback id of the autoplayed first track.
	Queue     string        `json:"queue,omitempty"`      // Comma-joined continuation ids, empty when only one id exists.
	Autoplay  bool          `json:"autoplay"`             // Whether autoplay is requested. Always true for embed plans.
	LinkURL   string        `json:"link_url,omitempty"`   // The raw link of the first track when Kind is PlanKindDirectLink.
	Tracks    []TrackResult `json:"tracks"`               // The browse list: every track in provider order.
}
