// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_voice

import (
	"context"
	"errors"
	"sync"
	"testing"

	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fake Recognizer
// =============================================================================

type fakeRecognizer struct {
	mu           sync.Mutex
	onTranscript func(text string, confidence float32, language string, isFinal bool)
	ingested     [][]byte
	closed       bool
	initErr      error
}

func (f *fakeRecognizer) Name() string { return "fake-speech-to-text" }

func (f *fakeRecognizer) Initialize() error { return f.initErr }

func (f *fakeRecognizer) Transform(ctx context.Context, in []byte, opts *internal_transformer.SpeechToTextOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingested = append(f.ingested, in)
	return nil
}

func (f *fakeRecognizer) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func fakeFactory(rec *fakeRecognizer, factoryErr error) RecognizerFactory {
	return func(ctx context.Context, opts *internal_transformer.SpeechToTextInitializeOptions) (internal_transformer.SpeechToTextTransformer, error) {
		if factoryErr != nil {
			return nil, factoryErr
		}
		rec.onTranscript = opts.OnTranscript
		return rec, nil
	}
}

// =============================================================================
// Capture Tests
// =============================================================================

func TestCaptureAccumulatesTranscript(t *testing.T) {
	rec := &fakeRecognizer{}
	capture := NewCapture(commons.NewNopLogger(), fakeFactory(rec, nil), nil)

	require.NoError(t, capture.Start(context.Background()))
	assert.True(t, capture.IsListening())

	rec.onTranscript("tell me", 0.8, "en-US", false)
	assert.Equal(t, "tell me", capture.Transcript())

	rec.onTranscript("tell me about", 0.9, "en-US", true)
	rec.onTranscript("goroutines", 0.7, "en-US", false)
	assert.Equal(t, "tell me about goroutines", capture.Transcript())

	rec.onTranscript("goroutines and channels", 0.9, "en-US", true)
	assert.Equal(t, "tell me about goroutines and channels", capture.Transcript())
}

func TestCaptureStartFailureIsVoiceUnsupported(t *testing.T) {
	capture := NewCapture(commons.NewNopLogger(), fakeFactory(nil, errors.New("no stream")), nil)

	err := capture.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal_type.ErrVoiceUnsupported))
	assert.False(t, capture.IsListening())
}

func TestCaptureInitializeFailureIsVoiceUnsupported(t *testing.T) {
	rec := &fakeRecognizer{initErr: errors.New("quota exhausted")}
	capture := NewCapture(commons.NewNopLogger(), fakeFactory(rec, nil), nil)

	err := capture.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal_type.ErrVoiceUnsupported))
}

func TestCaptureIngestForwardsOnlyWhileListening(t *testing.T) {
	rec := &fakeRecognizer{}
	capture := NewCapture(commons.NewNopLogger(), fakeFactory(rec, nil), nil)

	// Before start: dropped.
	require.NoError(t, capture.Ingest(context.Background(), []byte{1, 2}))

	require.NoError(t, capture.Start(context.Background()))
	require.NoError(t, capture.Ingest(context.Background(), []byte{3, 4}))

	require.NoError(t, capture.Stop(context.Background()))
	require.NoError(t, capture.Ingest(context.Background(), []byte{5, 6}))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.ingested, 1)
	assert.Equal(t, []byte{3, 4}, rec.ingested[0])
	assert.True(t, rec.closed)
}

func TestCaptureStopPreservesTranscriptUntilReset(t *testing.T) {
	rec := &fakeRecognizer{}
	capture := NewCapture(commons.NewNopLogger(), fakeFactory(rec, nil), nil)

	require.NoError(t, capture.Start(context.Background()))
	rec.onTranscript("final answer", 0.9, "en-US", true)
	require.NoError(t, capture.Stop(context.Background()))

	assert.Equal(t, "final answer", capture.Transcript())

	capture.Reset()
	assert.Equal(t, "", capture.Transcript())
}

func TestCaptureLateHypothesisAfterStopIsDropped(t *testing.T) {
	rec := &fakeRecognizer{}
	capture := NewCapture(commons.NewNopLogger(), fakeFactory(rec, nil), nil)

	require.NoError(t, capture.Start(context.Background()))
	require.NoError(t, capture.Stop(context.Background()))

	rec.onTranscript("late result", 0.9, "en-US", true)
	assert.Equal(t, "", capture.Transcript())
}
