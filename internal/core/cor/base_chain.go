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
// recommendation pipeline. This file defines BaseChain, the default
// implementation of the Chain interface.
//
// Logic flow:
//
//  1. Execute is called with the shared context for one request, and an
//     OpenTelemetry span is opened for the whole chain.
//  2. The chain walks its command list in order. Each command gets its own
//     child span.
//  3. If a previous command recorded an error and the chain is not configured
//     to continue on failure, execution stops.
//  4. A command whose IsExecutable check fails is skipped, not failed. The
//     emotion-detection commands rely on this: for blank input they simply
//     do not run, and the mood selector downstream still produces a mood.
//  5. After each command, the value it left in CtxOut is moved to CtxIn so
//     that the next command sees it as its primary input (the "flip-flop"
//     that turns the command list into a pipeline).
//  6. When the walk finishes, the chain span's status reflects whether any
//     command recorded an error.
package cor

import (
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

// BaseChain is the default implementation of the Chain interface. It holds
// an ordered slice of commands executed sequentially.
type BaseChain struct {
	BaseCommand
	continueOnFailure bool      // Whether to keep executing after a command records an error.
	commands          []Command // The ordered list of commands this chain executes.
}

// NewBaseChain is the constructor for BaseChain.
//
// Inputs:
//   - name: A name for this chain instance, used for logging and telemetry.
//
// Outputs:
//   - *BaseChain: A pointer to the newly instantiated chain.
func NewBaseChain(name string) *BaseChain {
	return &BaseChain{BaseCommand: *NewBaseCommand(name)}
}

// ContinueOnFailure is a builder method setting the chain's error behavior.
// When true, the chain executes every command even after failures; when
// false (the default) it stops at the first command that records an error.
func (c *BaseChain) ContinueOnFailure(continueOnFailure bool) Chain {
	c.continueOnFailure = continueOnFailure
	return c
}

// AddCommand appends a command to the chain's execution sequence and returns
// the chain for fluent building.
func (c *BaseChain) AddCommand(command Command) Chain {
	c.commands = append(c.commands, command)
	return c
}

// IsExecutable reports whether the chain can run. A chain only requires a
// valid Go context; individual commands perform their own input checks.
func (c *BaseChain) IsExecutable(context Context) bool {
	return context.GetContext() != nil
}

// Execute orchestrates the sequential execution of all commands in the chain.
//
// Inputs:
//   - chCtx: The shared cor.Context for this pipeline execution.
func (c *BaseChain) Execute(chCtx Context) {
	// Keep a reference to the Go context the chain started with so command
	// spans stay siblings rather than nesting under each other.
	parentCtx := chCtx.GetContext()

	outerCtx, chainSpan := c.Tracer.Start(parentCtx, fmt.Sprintf("%s_execute", c.GetName()))
	defer chainSpan.End()

	for _, command := range c.commands {
		commandContext, commandSpan := c.Tracer.Start(outerCtx, command.GetName())

		// Stop the walk if an earlier command failed and the chain is not
		// configured to push through failures.
		if chCtx.HasErrors() && !c.continueOnFailure {
			commandSpan.SetStatus(codes.Error, "previous error on chain; skipping execution")
			commandSpan.End()
			break
		}

		if command.IsExecutable(chCtx) {
			// Run the command under its own span, then restore the chain's
			// context so the next span is a sibling, not a grandchild.
			chCtx.SetContext(commandContext)
			command.Execute(chCtx)
			chCtx.SetContext(outerCtx)

			if chCtx.HasErrors() {
				commandSpan.SetStatus(codes.Error, "error during or after command execution")
			} else {
				commandSpan.SetStatus(codes.Ok, "command completed successfully")
			}
		} else {
			// Not executable means the precondition is absent, e.g. no text
			// was submitted so there is nothing to classify. The pipeline
			// carries on; downstream commands handle the gap.
			commandSpan.SetStatus(codes.Ok, fmt.Sprintf("command skipped: %s", command.GetName()))
		}
		commandSpan.End()

		// Flip-flop: the value the command left in CtxOut becomes the CtxIn
		// of the next command.
		outputValue := chCtx.Get(CtxOut)
		chCtx.Remove(CtxIn)
		if outputValue != nil {
			chCtx.Add(CtxIn, outputValue)
		}
		chCtx.Remove(CtxOut)
	}

	if !chCtx.HasErrors() {
		chainSpan.SetStatus(codes.Ok, "chain completed successfully")
	} else {
		chainSpan.SetStatus(codes.Error, "chain failed to execute")
	}
}
