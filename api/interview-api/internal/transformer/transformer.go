// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer

import (
	"context"

	"github.com/rapidaai/interview-api/pkg/utils"
)

// Credential carries provider credential material resolved from config.
type Credential struct {
	// Key is a plain API key (Google API key or Deepgram token).
	Key string
	// ProjectId scopes Google quota attribution.
	ProjectId string
	// ServiceAccountKey is a Google service account JSON document.
	ServiceAccountKey string
}

// AudioConfig describes the PCM stream exchanged with a speech provider.
// The engine speaks LINEAR16 16kHz mono end to end.
type AudioConfig struct {
	SampleRate int32
	Channels   int32
}

// DefaultAudioConfig is the engine-wide capture/synthesis format.
var DefaultAudioConfig = AudioConfig{
	SampleRate: 16000,
	Channels:   1,
}

// SpeechToTextInitializeOptions configures a recognizer stream.
// OnTranscript is invoked from the provider's listener goroutine for every
// partial and final hypothesis.
type SpeechToTextInitializeOptions struct {
	AudioConfig  AudioConfig
	ModelOptions utils.Option
	OnTranscript func(text string, confidence float32, language string, isFinal bool)
}

// TextToSpeechInitializeOptions configures a synthesizer.
// OnSpeech receives synthesized audio chunks tagged with the utterance
// context id.
type TextToSpeechInitializeOptions struct {
	AudioConfig  AudioConfig
	ModelOptions utils.Option
	OnSpeech     func(contextId string, audio []byte)
}

// SpeechToTextOption carries per-call recognition options.
type SpeechToTextOption struct{}

// TextToSpeechOption carries per-utterance synthesis options.
type TextToSpeechOption struct {
	ContextId string
}

// SpeechToTextTransformer streams candidate audio to a recognition engine.
type SpeechToTextTransformer interface {
	Name() string
	Initialize() error
	Transform(ctx context.Context, in []byte, opts *SpeechToTextOption) error
	Close(ctx context.Context) error
}

// TextToSpeechTransformer turns prompt text into narration audio.
type TextToSpeechTransformer interface {
	Name() string
	Initialize() error
	Transform(ctx context.Context, in string, opts *TextToSpeechOption) error
	Close(ctx context.Context) error
}
