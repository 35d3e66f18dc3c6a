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

// Package model defines the data structures for the application. This file,
// `examples.go`, provides factory functions for creating hardcoded, example
// instances of the data models.
//
// These example objects are used for "few-shot" prompting with the
// generative AI model. By embedding a concrete example of the desired JSON
// output structure in the prompt itself, we guide the model to return data
// that is consistent, correctly formatted, and easily parsable.
package model

// GetExamplePrediction creates a sample EmotionPrediction object. It is
// marshaled into the classification prompt as the canonical shape of the
// model's answer: a single top-ranked prediction with a lowercase label drawn
// from the closed emotion set and a confidence score.
//
// Outputs:
//   - *EmotionPrediction: A pointer to a hardcoded EmotionPrediction object.
func GetExamplePrediction() *EmotionPrediction {
	return &EmotionPrediction{
		Label: EmotionJoy,
		Score: 0.93,
	}
}

// NeutralPrediction returns the fallback prediction used whenever the
// classifier cannot produce a usable answer: a generation failure, a
// malformed response, or unsupported input. Classification is best-effort
// and lossy; a failure must never surface as an error to the user.
//
// Outputs:
//   - *EmotionPrediction: A neutral prediction with zero confidence.
func NeutralPrediction() *EmotionPrediction {
	return &EmotionPrediction{
		Label: EmotionNeutral,
		Score: 0,
	}
}
