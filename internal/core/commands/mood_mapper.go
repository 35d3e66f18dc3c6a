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
// mood mapping step: a pure table lookup from the detected emotion to the
// mood used for the track search. It has no failure mode — unknown labels
// fall back to the chill mood inside model.MapToMood.
package commands

import (
	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
)

// MoodMapper is a command that converts an EmotionPrediction into the
// auto-detected mood.
type MoodMapper struct {
	cor.BaseCommand
}

// NewMoodMapper is the constructor for the MoodMapper command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputParamName: The context key where the detected mood is stored,
//     so the mood selector and the API layer can read it independently of
//     the chain's piping.
//
// Outputs:
//   - *MoodMapper: The instantiated command.
func NewMoodMapper(name string, outputParamName string) *MoodMapper {
	out := MoodMapper{BaseCommand: *cor.NewBaseCommand(name)}
	out.OutputParamName = outputParamName
	return &out
}

// Execute maps the prediction's label to its mood.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (m *MoodMapper) Execute(context cor.Context) {
	prediction := context.Get(m.GetInputParam()).(*model.EmotionPrediction)

	mood := model.MapToMood(prediction.Label)
	m.GetSuccessCounter().Add(context.GetContext(), 1)

	context.Add(m.GetOutputParam(), mood)
	context.Add(cor.CtxOut, mood)
}
