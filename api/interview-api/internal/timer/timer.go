// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_timer

import (
	"context"
	"sync"
	"time"

	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
)

// QuestionTimer counts one question's budget down in one-second steps.
// Start arms the countdown with the callbacks for that arming; Cancel
// disarms it. A countdown that reaches zero fires its expiry callback
// exactly once. Re-arming invalidates the previous countdown, so at most
// one armed countdown delivers callbacks at any time. Callers that can
// re-arm concurrently with expiry must treat the callback as advisory and
// re-check their own state (the expiry may belong to the previous arming).
type QuestionTimer interface {
	// Start arms the countdown for the given number of seconds. A budget
	// of zero or less expires immediately. Callbacks run on the timer
	// goroutine and must not block.
	Start(seconds int, onTick func(remaining int), onExpire func())

	// Cancel disarms the countdown. Safe to call at any time.
	Cancel()

	// Remaining returns the seconds left in the active countdown, zero
	// when disarmed.
	Remaining() int
}

// Option customizes a QuestionTimer.
type Option func(*questionTimer)

// WithTickInterval compresses the tick interval. Tests run countdowns at
// millisecond scale with it.
func WithTickInterval(d time.Duration) Option {
	return func(t *questionTimer) { t.interval = d }
}

type questionTimer struct {
	logger   commons.Logger
	interval time.Duration

	mu         sync.Mutex
	generation uint64
	remaining  int
	active     bool
}

// NewQuestionTimer builds a disarmed timer.
func NewQuestionTimer(logger commons.Logger, opts ...Option) QuestionTimer {
	t := &questionTimer{
		logger:   logger,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *questionTimer) Start(seconds int, onTick func(remaining int), onExpire func()) {
	t.mu.Lock()
	t.generation++
	generation := t.generation
	t.remaining = seconds
	t.active = seconds > 0
	t.mu.Unlock()

	if seconds <= 0 {
		utils.Go(context.Background(), func() {
			if t.isCurrent(generation) && onExpire != nil {
				onExpire()
			}
		})
		return
	}

	utils.Go(context.Background(), func() { t.run(generation, onTick, onExpire) })
}

func (t *questionTimer) run(generation uint64, onTick func(remaining int), onExpire func()) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for range ticker.C {
		t.mu.Lock()
		if t.generation != generation || !t.active {
			t.mu.Unlock()
			return
		}
		t.remaining--
		remaining := t.remaining
		expired := remaining <= 0
		if expired {
			t.active = false
		}
		t.mu.Unlock()

		if onTick != nil {
			onTick(remaining)
		}
		if expired {
			if onExpire != nil {
				onExpire()
			}
			return
		}
	}
}

func (t *questionTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	t.active = false
	t.remaining = 0
}

func (t *questionTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return 0
	}
	return t.remaining
}

func (t *questionTimer) isCurrent(generation uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation == generation
}
