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

// Package cloud provides the clients for the external providers. This file
// implements a decorator around the Generative AI client that adds rate
// limiting and retries.
//
// Why this matters here:
//   - Rate limiting: Vertex AI enforces per-minute quotas. The emotion
//     classifier runs once per user submission, but nothing stops a burst of
//     submissions from exceeding the quota without this guard.
//   - Retries: model calls can fail transiently. The wrapper retries a
//     bounded number of times before giving up; the classifier then degrades
//     to its neutral default rather than surfacing the failure.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: wraps a named model with a rate limiter.
//
// Interfaces:
//   - ContentGenerator: the minimal surface the pipeline commands depend on,
//     so tests can substitute a fake model.
package cloud

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// maxGenerateRetries bounds the retry loop for a single generation call.
const maxGenerateRetries = 3

// ContentGenerator is the minimal generative-model surface used by the
// pipeline. The emotion classifier and the voice transcriber both depend on
// this interface rather than on the concrete client, which keeps the
// pretrained model an opaque, substitutable collaborator.
type ContentGenerator interface {
	// GenerateContent produces a model response for the given content parts.
	GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error)
}

// QuotaAwareGenerativeAIModel decorates a named Vertex AI model with a rate
// limiter and bounded retries. It is the production implementation of
// ContentGenerator.
type QuotaAwareGenerativeAIModel struct {
	GenerateConfig *genai.GenerateContentConfig // The generation settings (temperature, system instructions, output format).
	ModelName      string                       // The name of the Vertex AI model to invoke.
	ModelHandle    *genai.Models                // The underlying model collection handle from the genai client.
	RateLimit      *rate.Limiter                // Limits the request frequency against the model.
}

// NewQuotaAwareModel constructs a QuotaAwareGenerativeAIModel.
//
// Inputs:
//   - config: The generation settings to apply on every call.
//   - name: The name of the Vertex AI model.
//   - handle: The genai models handle used to issue the calls.
//   - requestsPerSecond: The maximum number of API calls allowed per second.
//
// Outputs:
//   - *QuotaAwareGenerativeAIModel: A pointer to the newly created wrapper.
func NewQuotaAwareModel(config *genai.GenerateContentConfig, name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	return &QuotaAwareGenerativeAIModel{
		GenerateConfig: config,
		ModelName:      name,
		ModelHandle:    handle,
		// A bucket that refills once per second and allows a burst of
		// requestsPerSecond calls.
		RateLimit: rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
	}
}

// GenerateContent issues a generation call through the rate limiter, retrying
// transient failures up to maxGenerateRetries times with a short pause
// between attempts. The caller's context bounds the whole operation: when it
// is cancelled or past its deadline the loop stops immediately.
//
// Inputs:
//   - ctx: The context for the request.
//   - content: The content parts of the prompt (text, or text plus audio).
//
// Outputs:
//   - *genai.GenerateContentResponse: The model response on success.
//   - error: The last error after retries are exhausted, or the context error.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	// Wait blocks until the limiter grants a token or the context ends.
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= maxGenerateRetries; attempt++ {
		resp, err := q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerateConfig)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Stop retrying as soon as the request context is done; the pause
		// below must also respect cancellation.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return nil, errors.Join(errors.New("failed generation on max retries"), lastErr)
}
