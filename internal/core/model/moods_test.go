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

// Package model_test contains the test suite for the model package. This file
// verifies the emotion-to-mood table, the mood selection contract, and the
// composition of the manual chooser's option list.
package model_test

import (
	"testing"

	"github.com/prajyot2003/moodify/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestMapToMood verifies the full fixed table: every emotion label in the
// closed set maps to its documented mood, and any label outside the set maps
// to "chill".
func TestMapToMood(t *testing.T) {
	cases := []struct {
		label model.EmotionLabel
		want  model.Mood
	}{
		{model.EmotionJoy, model.MoodHappy},
		{model.EmotionLove, model.MoodRomantic},
		{model.EmotionAnger, model.MoodCalm},
		{model.EmotionSadness, model.MoodSad},
		{model.EmotionFear, model.MoodRelaxing},
		{model.EmotionSurprise, model.MoodEnergetic},
		{model.EmotionDisgust, model.MoodMoody},
		{model.EmotionNeutral, model.MoodChill},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, model.MapToMood(tc.label), "label %q", tc.label)
	}

	// Labels the classifier should never emit still resolve to a usable mood.
	assert.Equal(t, model.MoodChill, model.MapToMood("ennui"))
	assert.Equal(t, model.MoodChill, model.MapToMood(""))
	assert.Equal(t, model.MoodChill, model.MapToMood("JOY"))
}

// TestSelectMood verifies that an explicit manual pick always wins over the
// automatic detection, and that detection is only consulted when the user
// never touched the chooser.
func TestSelectMood(t *testing.T) {
	// The manual choice wins regardless of whether a detection exists.
	assert.Equal(t, model.MoodParty, model.SelectMood(model.MoodSad, model.MoodParty))
	assert.Equal(t, model.MoodParty, model.SelectMood("", model.MoodParty))

	// Without a manual choice the detected mood is used.
	assert.Equal(t, model.MoodSad, model.SelectMood(model.MoodSad, ""))

	// With neither value the chooser's default applies.
	assert.Equal(t, model.MoodChill, model.SelectMood("", ""))
}

// TestMoodOptions verifies that the chooser list is the union of the mapped
// moods and the manual extras, sorted and free of duplicates.
func TestMoodOptions(t *testing.T) {
	options := model.MoodOptions()

	seen := make(map[model.Mood]bool)
	for _, mood := range options {
		assert.False(t, seen[mood], "duplicate mood %q", mood)
		seen[mood] = true
	}

	for _, mood := range []model.Mood{
		model.MoodHappy, model.MoodRomantic, model.MoodCalm, model.MoodSad,
		model.MoodRelaxing, model.MoodEnergetic, model.MoodMoody, model.MoodChill,
		model.MoodLofi, model.MoodFocus, model.MoodParty, model.MoodWorkout, model.MoodSleep,
	} {
		assert.True(t, seen[mood], "missing mood %q", mood)
	}
	assert.Equal(t, 13, len(options))

	for i := 1; i < len(options); i++ {
		assert.True(t, options[i-1] < options[i], "options must be sorted")
	}
}

// TestIsValidMood verifies membership checks against the closed mood set.
func TestIsValidMood(t *testing.T) {
	assert.True(t, model.IsValidMood(model.MoodLofi))
	assert.True(t, model.IsValidMood(model.MoodChill))
	assert.False(t, model.IsValidMood("metalcore"))
	assert.False(t, model.IsValidMood(""))
}
