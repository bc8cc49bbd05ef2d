// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_narrator

import (
	"context"
	"sync"
	"testing"
	"time"

	internal_normalizers "github.com/rapidaai/interview-api/api/interview-api/internal/normalizers"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fake Synthesizer
// =============================================================================

type fakeSynthesizer struct {
	mu       sync.Mutex
	spoken   []string
	closed   bool
	notify   chan string
	blockFor time.Duration
}

func newFakeSynthesizer() *fakeSynthesizer {
	return &fakeSynthesizer{notify: make(chan string, 32)}
}

func (f *fakeSynthesizer) Name() string      { return "fake-text-to-speech" }
func (f *fakeSynthesizer) Initialize() error { return nil }

func (f *fakeSynthesizer) Transform(ctx context.Context, in string, opts *internal_transformer.TextToSpeechOption) error {
	if f.blockFor > 0 {
		time.Sleep(f.blockFor)
	}
	f.mu.Lock()
	f.spoken = append(f.spoken, in)
	f.mu.Unlock()
	f.notify <- in
	return nil
}

func (f *fakeSynthesizer) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSynthesizer) waitFor(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-f.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %d utterances", n)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

// =============================================================================
// Narrator Tests
// =============================================================================

func TestNarratorSpeaksInOrder(t *testing.T) {
	synth := newFakeSynthesizer()
	narrator := NewNarrator(context.Background(), commons.NewNopLogger(), synth, nil)
	defer narrator.Close(context.Background())

	require.NoError(t, narrator.Speak(context.Background(), "first question"))
	require.NoError(t, narrator.Speak(context.Background(), "second question"))
	require.NoError(t, narrator.Speak(context.Background(), "third question"))

	spoken := synth.waitFor(t, 3)
	assert.Equal(t, []string{"first question", "second question", "third question"}, spoken)
}

func TestNarratorAppliesNormalizers(t *testing.T) {
	synth := newFakeSynthesizer()
	pipeline := internal_normalizers.BuildPipeline(commons.NewNopLogger(), []string{"number"})
	narrator := NewNarrator(context.Background(), commons.NewNopLogger(), synth, pipeline)
	defer narrator.Close(context.Background())

	require.NoError(t, narrator.Speak(context.Background(), "Question 3 of 5"))

	spoken := synth.waitFor(t, 1)
	assert.Equal(t, []string{"Question three of five"}, spoken)
}

func TestNarratorCancelDropsQueued(t *testing.T) {
	synth := newFakeSynthesizer()
	synth.blockFor = 50 * time.Millisecond
	narrator := NewNarrator(context.Background(), commons.NewNopLogger(), synth, nil)
	defer narrator.Close(context.Background())

	require.NoError(t, narrator.Speak(context.Background(), "playing now"))
	require.NoError(t, narrator.Speak(context.Background(), "queued one"))
	require.NoError(t, narrator.Speak(context.Background(), "queued two"))
	narrator.Cancel()

	// Only the utterance already in flight can still complete.
	time.Sleep(300 * time.Millisecond)
	synth.mu.Lock()
	spoken := append([]string(nil), synth.spoken...)
	synth.mu.Unlock()
	assert.LessOrEqual(t, len(spoken), 1)
	for _, s := range spoken {
		assert.Equal(t, "playing now", s)
	}
}

func TestNarratorCloseReleasesSynthesizer(t *testing.T) {
	synth := newFakeSynthesizer()
	narrator := NewNarrator(context.Background(), commons.NewNopLogger(), synth, nil)

	require.NoError(t, narrator.Close(context.Background()))
	assert.Error(t, narrator.Speak(context.Background(), "after close"))

	synth.mu.Lock()
	defer synth.mu.Unlock()
	assert.True(t, synth.closed)
}
