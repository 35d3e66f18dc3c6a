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
// data transformation step that follows the classifier.
//
// Logic flow:
//  1. It receives the raw JSON prediction string from the context.
//  2. It parses the string into a strongly-typed model.EmotionPrediction
//     and lowercases the label, the form the mood mapper expects.
//  3. A malformed response degrades to the neutral prediction — the
//     classification leg has no error path that reaches the user.
//  4. The struct is stored both under its named output parameter (so the
//     API layer can report the detected emotion) and in the general output
//     slot for the next command.
package commands

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
)

// PredictionToStruct is a command that parses the classifier's raw JSON into
// an EmotionPrediction.
type PredictionToStruct struct {
	cor.BaseCommand
}

// NewPredictionToStruct is the constructor for the PredictionToStruct command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputParamName: The context key where the parsed struct is stored.
//
// Outputs:
//   - *PredictionToStruct: The instantiated command.
func NewPredictionToStruct(name string, outputParamName string) *PredictionToStruct {
	out := PredictionToStruct{BaseCommand: *cor.NewBaseCommand(name)}
	out.OutputParamName = outputParamName
	return &out
}

// Execute parses the raw JSON prediction and normalizes its label.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (s *PredictionToStruct) Execute(context cor.Context) {
	in := context.Get(s.GetInputParam()).(string)

	prediction := &model.EmotionPrediction{}
	if err := json.Unmarshal([]byte(in), prediction); err != nil {
		// Malformed model output is treated the same as a failed call:
		// neutral, logged, never fatal.
		s.GetErrorCounter().Add(context.GetContext(), 1)
		slog.Warn("unparsable emotion prediction, using neutral", "error", err)
		prediction = model.NeutralPrediction()
	} else {
		s.GetSuccessCounter().Add(context.GetContext(), 1)
	}

	// The mapping table is keyed on lowercase labels.
	prediction.Label = model.EmotionLabel(strings.ToLower(strings.TrimSpace(string(prediction.Label))))

	context.Add(s.GetOutputParam(), prediction)
	context.Add(cor.CtxOut, prediction)
}
