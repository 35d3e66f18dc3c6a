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
// This file, `moods.go`, contains the closed vocabulary the recommendation
// pipeline operates on: the emotion labels produced by the pretrained
// classifier, the moods used to build music search queries, and the fixed
// mapping between the two.
//
// The mapping is intentionally a simple static table. The classifier's label
// set is fixed at seven values, and every one of them has exactly one mood.
// Labels outside the table (which the current model never emits) fall back
// to the "chill" mood so that an unexpected model response can never break
// a request.
package model

import "sort"

// EmotionLabel is a lowercase tag produced by the emotion classifier.
// The set of values is closed and owned by the pretrained model; this
// application only ever compares and maps them.
type EmotionLabel string

// The emotion labels the classifier is known to emit.
const (
	EmotionJoy      EmotionLabel = "joy"
	EmotionLove     EmotionLabel = "love"
	EmotionAnger    EmotionLabel = "anger"
	EmotionSadness  EmotionLabel = "sadness"
	EmotionFear     EmotionLabel = "fear"
	EmotionSurprise EmotionLabel = "surprise"
	EmotionDisgust  EmotionLabel = "disgust"
	EmotionNeutral  EmotionLabel = "neutral"
)

// Mood is a music mood/genre keyword used to build the track search query.
// The full set is the union of the mapped emotion moods and a handful of
// manually selectable extras (lofi, focus, party, workout, sleep).
type Mood string

// Moods reachable through emotion detection.
const (
	MoodHappy     Mood = "happy"
	MoodRomantic  Mood = "romantic"
	MoodCalm      Mood = "calm"
	MoodSad       Mood = "sad"
	MoodRelaxing  Mood = "relaxing"
	MoodEnergetic Mood = "energetic"
	MoodMoody     Mood = "moody"
	MoodChill     Mood = "chill"
)

// Extra moods that can only be chosen manually.
const (
	MoodLofi    Mood = "lofi"
	MoodFocus   Mood = "focus"
	MoodParty   Mood = "party"
	MoodWorkout Mood = "workout"
	MoodSleep   Mood = "sleep"
)

// emotionToMood is the fixed emotion-to-mood table. Anger deliberately steers
// toward calming music rather than matching the emotion.
var emotionToMood = map[EmotionLabel]Mood{
	EmotionJoy:      MoodHappy,
	EmotionLove:     MoodRomantic,
	EmotionAnger:    MoodCalm,
	EmotionSadness:  MoodSad,
	EmotionFear:     MoodRelaxing,
	EmotionSurprise: MoodEnergetic,
	EmotionDisgust:  MoodMoody,
	EmotionNeutral:  MoodChill,
}

// MapToMood converts an emotion label to its mood. It is a total, pure
// function: any label outside the fixed table maps to MoodChill.
//
// Inputs:
//   - label: The emotion label produced by the classifier.
//
// Outputs:
//   - Mood: The mood associated with the label, or MoodChill for unknown labels.
func MapToMood(label EmotionLabel) Mood {
	if mood, ok := emotionToMood[label]; ok {
		return mood
	}
	return MoodChill
}

// SelectMood reconciles an auto-detected mood with the user's explicit choice.
// The contract is that an explicit pick always wins: detection only ever
// supplies the default. When neither value is present the result is MoodChill,
// matching the chooser's default state in the UI.
//
// Inputs:
//   - auto: The mood derived from emotion detection. May be empty when the
//     user submitted no text.
//   - manual: The mood explicitly chosen by the user. May be empty when the
//     user never touched the chooser.
//
// Outputs:
//   - Mood: The single active mood used for the track search.
func SelectMood(auto Mood, manual Mood) Mood {
	if manual != "" {
		return manual
	}
	if auto != "" {
		return auto
	}
	return MoodChill
}

// MoodOptions returns the full, sorted list of moods presented by the manual
// chooser: every mood reachable through the mapping table plus the extras.
// The list is rebuilt on each call so callers are free to mutate it.
//
// Outputs:
//   - []Mood: All selectable moods in ascending lexical order.
func MoodOptions() []Mood {
	seen := make(map[Mood]bool)
	out := make([]Mood, 0, len(emotionToMood)+5)
	for _, mood := range emotionToMood {
		if !seen[mood] {
			seen[mood] = true
			out = append(out, mood)
		}
	}
	for _, mood := range []Mood{MoodLofi, MoodFocus, MoodParty, MoodWorkout, MoodSleep} {
		if !seen[mood] {
			seen[mood] = true
			out = append(out, mood)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsValidMood reports whether the given mood is part of the closed mood set.
// Used by the API layer to reject arbitrary strings in the manual chooser.
func IsValidMood(mood Mood) bool {
	for _, option := range MoodOptions() {
		if option == mood {
			return true
		}
	}
	return false
}
