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

// Package services contains the business logic for interacting with the
// external data sources. This file defines the TranscriptionService, which
// turns a short recorded voice clip into text using the multimodal
// generative model.
//
// Transcription is strictly bounded: one attempt, under a fixed deadline
// that mirrors a microphone listen window. Each failure mode maps to a
// distinct sentinel error so the API layer can show the matching
// user-visible message — no retry, and nothing fatal to the process.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"

	"github.com/prajyot2003/moodify/internal/cloud"
)

// Sentinel errors for the voice-capture failure taxonomy. The API layer maps
// each to its own user-visible message.
var (
	// ErrNoSpeech means the clip was processed but no words came out of it.
	ErrNoSpeech = errors.New("no speech understood")

	// ErrListenTimeout means transcription did not finish inside the listen
	// window.
	ErrListenTimeout = errors.New("no voice detected")

	// ErrUnsupportedClip means the uploaded bytes are not a recognizable
	// audio recording.
	ErrUnsupportedClip = errors.New("unsupported audio clip")
)

// TranscriptionService transcribes short voice clips with the multimodal
// generative model.
type TranscriptionService struct {
	Generator cloud.ContentGenerator // The rate-limited generative model.
	Prompt    string                 // The instruction asking the model to transcribe verbatim.
	Window    time.Duration          // The bounded listen window for one clip.

	inputTokenCounter  metric.Int64Counter // OTel counter for prompt tokens used.
	outputTokenCounter metric.Int64Counter // OTel counter for response tokens generated.
}

// NewTranscriptionService constructs a TranscriptionService.
//
// Inputs:
//   - generator: The generative model used for transcription.
//   - prompt: The transcription instruction from the prompt templates.
//   - window: The fixed deadline for one transcription attempt.
//
// Outputs:
//   - *TranscriptionService: The initialized service with telemetry counters.
func NewTranscriptionService(generator cloud.ContentGenerator, prompt string, window time.Duration) *TranscriptionService {
	meter := otel.Meter("github.com/prajyot2003/moodify")
	out := &TranscriptionService{
		Generator: generator,
		Prompt:    prompt,
		Window:    window,
	}
	out.inputTokenCounter, _ = meter.Int64Counter("transcribe.token.input")
	out.outputTokenCounter, _ = meter.Int64Counter("transcribe.token.output")
	return out
}

// Transcribe converts one recorded clip to text.
//
// Logic flow:
//  1. Sniff the clip's MIME type. Only recognizable audio (or an audio
//     recording in a webm/mp4 container, which is what browsers produce)
//     is accepted.
//  2. Send the transcription prompt plus the clip bytes to the model under
//     the listen-window deadline.
//  3. An empty transcript maps to ErrNoSpeech, a blown deadline to
//     ErrListenTimeout; any other failure is returned as-is for the generic
//     voice-error message.
//
// Inputs:
//   - ctx: The request context; the listen window is layered on top of it.
//   - clip: The raw bytes of the recorded clip.
//
// Outputs:
//   - string: The transcript with surrounding whitespace trimmed.
//   - error: One of the sentinel errors above, or the underlying failure.
func (s *TranscriptionService) Transcribe(ctx context.Context, clip []byte) (string, error) {
	mimeType, err := sniffClipMIME(clip)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Window)
	defer cancel()

	content := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: s.Prompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: clip}},
			},
		},
	}

	transcript, err := cloud.GenerateTextResponse(ctx, s.inputTokenCounter, s.outputTokenCounter, s.Generator, content)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrListenTimeout
		}
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}

// sniffClipMIME determines the MIME type of the uploaded clip. Browser
// recordings usually arrive as audio inside a webm or mp4 container, which
// the sniffer reports under a video/ prefix; those are rewritten to their
// audio equivalents before being handed to the model.
func sniffClipMIME(clip []byte) (string, error) {
	kind, err := filetype.Match(clip)
	if err != nil || kind == filetype.Unknown {
		return "", ErrUnsupportedClip
	}
	switch kind.MIME.Value {
	case "video/webm":
		return "audio/webm", nil
	case "video/mp4":
		return "audio/mp4", nil
	}
	if strings.HasPrefix(kind.MIME.Value, "audio/") {
		return kind.MIME.Value, nil
	}
	return "", ErrUnsupportedClip
}
