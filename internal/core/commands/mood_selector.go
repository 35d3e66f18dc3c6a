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
// mood selection step, which reconciles the auto-detected mood with the
// user's explicit choice into the single active mood used downstream.
//
// The contract preserved here: once the user has made an explicit pick,
// detection never silently overrides it. Detection only supplies the default
// when the user picked nothing.
package commands

import (
	"github.com/prajyot2003/moodify/internal/core/cor"
	"github.com/prajyot2003/moodify/internal/core/model"
)

// MoodSelector is a command producing the active mood from the detected and
// manually chosen moods.
type MoodSelector struct {
	cor.BaseCommand
	autoMoodParamName   string // Context key holding the detected mood, when one exists.
	manualMoodParamName string // Context key holding the user's explicit choice, when one exists.
}

// NewMoodSelector is the constructor for the MoodSelector command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - autoMoodParamName: The context key the mood mapper writes to.
//   - manualMoodParamName: The context key the API layer seeds with the
//     user's explicit choice.
//   - outputParamName: The context key where the active mood is stored.
//
// Outputs:
//   - *MoodSelector: The instantiated command.
func NewMoodSelector(name string, autoMoodParamName string, manualMoodParamName string, outputParamName string) *MoodSelector {
	out := MoodSelector{
		BaseCommand:         *cor.NewBaseCommand(name),
		autoMoodParamName:   autoMoodParamName,
		manualMoodParamName: manualMoodParamName,
	}
	out.OutputParamName = outputParamName
	return &out
}

// IsExecutable only requires a valid Go context. Both input moods are
// optional: with neither present the selector still produces the default
// chill mood, which is what makes the blank-text path work.
func (m *MoodSelector) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil
}

// Execute selects the active mood.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (m *MoodSelector) Execute(context cor.Context) {
	var auto, manual model.Mood
	if v, ok := context.Get(m.autoMoodParamName).(model.Mood); ok {
		auto = v
	}
	if v, ok := context.Get(m.manualMoodParamName).(model.Mood); ok {
		manual = v
	}

	active := model.SelectMood(auto, manual)
	m.GetSuccessCounter().Add(context.GetContext(), 1)

	context.Add(m.GetOutputParam(), active)
	context.Add(cor.CtxOut, active)
}
