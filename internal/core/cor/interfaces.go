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
// recommendation pipeline. A pipeline is a sequence of commands executed over
// a shared context: the classifier, the mood mapper, the mood selector, the
// track search, and the playlist presenter are each one command. This file
// defines the interfaces that govern all components of the pattern.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys used to pipe the primary data flow through a
// BaseChain.
const (
	// CtxIn is the default key for a command's primary input. The BaseChain
	// populates it with the output of the previous command.
	CtxIn = "__IN__"
	// CtxOut is the default key where a command places its primary output.
	// The BaseChain picks it up as the input for the next command.
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands for
// one request. It is a property bag carrying data and errors between
// commands, plus the standard Go context for cancellation and tracing.
type Context interface {
	// SetContext sets the standard Go context, used for request-scoped
	// cancellation and OpenTelemetry span propagation.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. It returns the Context so calls can be
	// chained fluently.
	Add(key string, value interface{}) Context

	// AddError records an error produced by a command. The key should be the
	// name of the command that failed.
	AddError(key string, err error)

	// GetErrors returns every error collected during the pipeline run.
	GetErrors() map[string]error

	// Get retrieves a value by key, or nil when absent.
	Get(key string) interface{}

	// Remove deletes a key-value pair.
	Remove(key string)

	// HasErrors reports whether any command recorded an error.
	HasErrors() bool
}

// Executable is any object with a core execution step.
type Executable interface {
	// Execute runs the object's business logic, reading inputs from and
	// writing outputs to the given Context.
	Execute(context Context)
}

// Command is an atomic, testable unit of work in a pipeline.
type Command interface {
	Executable

	// GetName returns the command's unique name, used for logging and telemetry.
	GetName() string

	// GetInputParam returns the context key for the command's primary input.
	GetInputParam() string

	// GetOutputParam returns the context key for the command's primary output.
	GetOutputParam() string

	// IsExecutable is a precondition check: it reports whether the command
	// can run against the current state of the context. Commands that are
	// not executable are skipped, not failed — the classifier, for example,
	// is skipped entirely for blank input.
	IsExecutable(context Context) bool

	// GetTracer returns the command's OpenTelemetry tracer.
	GetTracer() trace.Tracer

	// GetMeter returns the command's OpenTelemetry meter.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered sequence of commands. A Chain is itself a Command, so
// chains can be nested (composite pattern).
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after a
	// command records an error. The default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
