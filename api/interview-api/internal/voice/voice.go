// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_voice

import (
	"context"
	"fmt"
	"strings"
	"sync"

	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
)

// RecognizerFactory opens a fresh recognition stream. The voice capture owns
// one stream per listening window; providers are swappable behind this.
type RecognizerFactory func(ctx context.Context, opts *internal_transformer.SpeechToTextInitializeOptions) (internal_transformer.SpeechToTextTransformer, error)

// Capture accumulates a live transcript from candidate audio while voice
// input is active. A failure to start is reported as ErrVoiceUnsupported so
// the session can fall back to typed answers.
type Capture interface {
	// Start opens a recognition stream. Returns ErrVoiceUnsupported when
	// the recognizer cannot be brought up.
	Start(ctx context.Context) error

	// Stop closes the recognition stream. The accumulated transcript
	// survives until Reset.
	Stop(ctx context.Context) error

	// Ingest forwards one chunk of candidate audio to the recognizer.
	// Chunks arriving while not listening are dropped silently.
	Ingest(ctx context.Context, audio []byte) error

	// Transcript returns the accumulated final hypotheses plus the latest
	// interim one.
	Transcript() string

	// Reset clears the transcript between questions.
	Reset()

	IsListening() bool
}

type transcriptCapture struct {
	logger  commons.Logger
	factory RecognizerFactory
	options utils.Option

	mu         sync.Mutex
	recognizer internal_transformer.SpeechToTextTransformer
	listening  bool
	finals     []string
	interim    string
}

// NewCapture builds a voice capture over the given recognizer factory.
func NewCapture(logger commons.Logger, factory RecognizerFactory, options utils.Option) Capture {
	return &transcriptCapture{
		logger:  logger,
		factory: factory,
		options: options,
	}
}

func (vc *transcriptCapture) Start(ctx context.Context) error {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	if vc.listening {
		return nil
	}

	recognizer, err := vc.factory(ctx, &internal_transformer.SpeechToTextInitializeOptions{
		AudioConfig:  internal_transformer.DefaultAudioConfig,
		ModelOptions: vc.options,
		OnTranscript: vc.onTranscript,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", internal_type.ErrVoiceUnsupported, err)
	}
	if err := recognizer.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", internal_type.ErrVoiceUnsupported, err)
	}

	vc.recognizer = recognizer
	vc.listening = true
	vc.logger.Infof("voice: listening via %s", recognizer.Name())
	return nil
}

func (vc *transcriptCapture) Stop(ctx context.Context) error {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	if !vc.listening {
		return nil
	}
	vc.listening = false

	recognizer := vc.recognizer
	vc.recognizer = nil
	if recognizer == nil {
		return nil
	}
	if err := recognizer.Close(ctx); err != nil {
		vc.logger.Errorf("voice: error closing recognizer: %v", err)
		return err
	}
	return nil
}

func (vc *transcriptCapture) Ingest(ctx context.Context, audio []byte) error {
	vc.mu.Lock()
	recognizer := vc.recognizer
	listening := vc.listening
	vc.mu.Unlock()

	if !listening || recognizer == nil {
		return nil
	}
	return recognizer.Transform(ctx, audio, &internal_transformer.SpeechToTextOption{})
}

func (vc *transcriptCapture) Transcript() string {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	parts := append([]string(nil), vc.finals...)
	if vc.interim != "" {
		parts = append(parts, vc.interim)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (vc *transcriptCapture) Reset() {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.finals = nil
	vc.interim = ""
}

func (vc *transcriptCapture) IsListening() bool {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.listening
}

// onTranscript runs on the provider's listener goroutine.
func (vc *transcriptCapture) onTranscript(text string, confidence float32, language string, isFinal bool) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	if !vc.listening {
		return
	}
	if isFinal {
		vc.finals = append(vc.finals, text)
		vc.interim = ""
		return
	}
	vc.interim = text
}
