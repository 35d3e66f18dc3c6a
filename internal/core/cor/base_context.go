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

// Package cor (Chain of Responsibility) provides the building blocks for the
// recommendation pipeline. This file defines BaseContext, the default
// implementation of the Context interface.
//
// One BaseContext is created per user submission. It carries the raw text,
// the manual mood choice, the intermediate pipeline values (prediction,
// detected mood, track list), the final presentation plan, and any errors the
// commands recorded along the way. It is discarded once the response has been
// rendered; nothing in it outlives the request.
package cor

import (
	"context"
)

// BaseContext is the default implementation of the Context interface, holding
// the shared state for one pipeline execution.
type BaseContext struct {
	data    map[string]interface{} // Arbitrary key-value data shared between commands.
	errors  map[string]error       // Errors keyed by the name of the command that produced them.
	context context.Context        // The standard Go context for cancellation and tracing.
}

// NewBaseContext constructs an empty, ready-to-use context.
//
// Outputs:
//   - Context: A new, empty context object.
func NewBaseContext() Context {
	return &BaseContext{
		data:   make(map[string]interface{}),
		errors: make(map[string]error),
	}
}

// SetContext sets the underlying standard Go context. The BaseChain uses
// this to thread OpenTelemetry span contexts through the commands.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext retrieves the underlying standard Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Add stores a key-value pair in the context's data map and returns the
// context for fluent chaining.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// AddError records an error against the name of the command that produced it.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns the map of all errors collected during the pipeline run.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// Get retrieves a value from the context's data map, or nil when the key
// does not exist.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove deletes a key-value pair from the context's data map.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// HasErrors reports whether any command recorded an error.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
