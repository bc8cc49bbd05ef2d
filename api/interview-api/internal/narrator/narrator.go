// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_narrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	internal_normalizers "github.com/rapidaai/interview-api/api/interview-api/internal/normalizers"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
)

const narrationQueueSize = 16

// Narrator reads question prompts aloud. Utterances queue and play in
// order on a single worker, so synthesis never overlaps; Cancel drops the
// current utterance and everything still queued.
type Narrator interface {
	// Speak enqueues one utterance. It never blocks; when the queue is
	// full the utterance is dropped with a warning.
	Speak(ctx context.Context, text string) error

	// Cancel discards the queued utterances and invalidates the one
	// currently being synthesized.
	Cancel()

	// Close cancels outstanding narration and releases the synthesizer.
	Close(ctx context.Context) error
}

type narrationJob struct {
	generation uint64
	contextId  string
	text       string
}

type queuedNarrator struct {
	logger      commons.Logger
	synthesizer internal_transformer.TextToSpeechTransformer
	pipeline    []internal_normalizers.Normalizer

	mu         sync.Mutex
	generation uint64
	closed     bool

	queue  chan narrationJob
	ctx    context.Context
	cancel context.CancelFunc
}

// NewNarrator starts the narration worker. The synthesizer must already be
// initialized; normalizers run in order on every utterance before synthesis.
func NewNarrator(ctx context.Context,
	logger commons.Logger,
	synthesizer internal_transformer.TextToSpeechTransformer,
	pipeline []internal_normalizers.Normalizer,
) Narrator {
	workerCtx, cancel := context.WithCancel(ctx)
	n := &queuedNarrator{
		logger:      logger,
		synthesizer: synthesizer,
		pipeline:    pipeline,
		queue:       make(chan narrationJob, narrationQueueSize),
		ctx:         workerCtx,
		cancel:      cancel,
	}
	utils.Go(workerCtx, n.worker)
	return n
}

func (n *queuedNarrator) Speak(ctx context.Context, text string) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return fmt.Errorf("narrator: closed")
	}
	job := narrationJob{
		generation: n.generation,
		contextId:  uuid.NewString(),
		text:       text,
	}
	n.mu.Unlock()

	select {
	case n.queue <- job:
		return nil
	default:
		n.logger.Warnf("narrator: queue full, dropping utterance %s", job.contextId)
		return nil
	}
}

func (n *queuedNarrator) Cancel() {
	n.mu.Lock()
	n.generation++
	n.mu.Unlock()

	// Drain whatever is still queued; stale generations are also skipped
	// by the worker, this just frees the buffer promptly.
	for {
		select {
		case <-n.queue:
		default:
			return
		}
	}
}

func (n *queuedNarrator) Close(ctx context.Context) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	n.generation++
	n.mu.Unlock()

	n.cancel()
	return n.synthesizer.Close(ctx)
}

func (n *queuedNarrator) worker() {
	for {
		select {
		case <-n.ctx.Done():
			return
		case job := <-n.queue:
			n.mu.Lock()
			stale := job.generation != n.generation
			n.mu.Unlock()
			if stale {
				continue
			}

			text := job.text
			for _, normalizer := range n.pipeline {
				text = normalizer.Normalize(text)
			}
			if err := n.synthesizer.Transform(n.ctx, text, &internal_transformer.TextToSpeechOption{
				ContextId: job.contextId,
			}); err != nil {
				n.logger.Errorf("narrator: synthesis failed for %s: %v", job.contextId, err)
			}
		}
	}
}
