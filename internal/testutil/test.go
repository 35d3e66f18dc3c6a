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

// Package test provides utility functions and mock data to support the
// application's test suite: a cached test configuration and canned model
// responses for the classification pipeline.
package test

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/prajyot2003/moodify/internal/cloud"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs, so the TOML files are read once per run.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil. A convenience to reduce
// boilerplate error checks in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// GetTestPredictionText returns the raw JSON string the classifier model
// produces for a clearly joyful submission. Used to test the parsing and
// mapping steps without a live model.
func GetTestPredictionText() string {
	return `{"label": "joy", "score": 0.9731}`
}

// GetTestMalformedPredictionText returns a truncated model response, the
// shape seen when generation stops at the token limit.
func GetTestMalformedPredictionText() string {
	return `{"label": "jo`
}

// findModuleRoot walks up from the current working directory until it finds
// the directory containing go.mod. Tests run with their package directory as
// the working directory, so the configs path has to be anchored at the
// module root rather than given relative.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}

// SetupOS configures the environment variables the configuration loader
// depends on, pointing it at the test configuration files
// (configs/.env.test.toml overlaying configs/.env.toml).
//
// Returns:
//   - An error if setting any environment variable fails.
func SetupOS() (err error) {
	root, err := findModuleRoot()
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigFilePrefix, filepath.Join(root, "configs"))
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration, loading the
// TOML files on first use and caching the result.
//
// Returns:
//   - A pointer to the loaded and cached cloud.Config struct.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(config)
		state.config = config
	}
	return state.config
}
