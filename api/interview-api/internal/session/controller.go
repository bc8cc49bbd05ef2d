// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	internal_media "github.com/rapidaai/interview-api/api/interview-api/internal/media"
	internal_narrator "github.com/rapidaai/interview-api/api/interview-api/internal/narrator"
	internal_scorer "github.com/rapidaai/interview-api/api/interview-api/internal/scorer"
	internal_source "github.com/rapidaai/interview-api/api/interview-api/internal/source"
	internal_timer "github.com/rapidaai/interview-api/api/interview-api/internal/timer"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	internal_voice "github.com/rapidaai/interview-api/api/interview-api/internal/voice"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
)

const eventBufferSize = 64

// Controller runs one interview session end to end: question sequencing,
// narration, capture, per-question countdown and the final scoring call.
// It is the single writer of session state; every mutation happens under
// one mutex, and all derived flags (recording, listening, started) are
// computed from the SessionState value.
type Controller interface {
	// Start loads the question set and enters the first question. A load
	// failure or an empty set leaves the state at NotStarted and returns
	// ErrSourceUnavailable.
	Start(ctx context.Context) error

	// Advance finalizes the current question and moves on. After Finished
	// it is a no-op. Manual advance and timer expiry share this path.
	Advance(ctx context.Context) error

	// CurrentQuestion returns the active question and its index, ok=false
	// outside InQuestion.
	CurrentQuestion() (*internal_type.Question, int, bool)

	// TimeRemaining is the current countdown value in seconds.
	TimeRemaining() int

	// Responses returns the finalized response list, complete once the
	// session is Finished.
	Responses() []internal_type.Response

	// State returns the session state.
	State() internal_type.SessionState

	// Events is the controller's notification stream.
	Events() <-chan Event

	// SetVoiceEnabled toggles voice input. Takes effect when the next
	// question begins.
	SetVoiceEnabled(enabled bool)

	// TypeAnswer buffers a typed answer for the current question.
	TypeAnswer(text string)

	// SelectOption buffers a selected option for the current question.
	SelectOption(option string)

	// Ingest fans candidate and narration media into the active question's
	// recorder and, for candidate audio, the live recognizer.
	Ingest(ctx context.Context, p internal_type.Packet) error

	// Evaluation returns the scoring verdict, nil until Finished or when
	// scoring failed.
	Evaluation() *internal_scorer.Evaluation

	// Close tears the session down from any state. No validator call is
	// made for an aborted session.
	Close(ctx context.Context) error
}

// Options wires a controller's collaborators.
type Options struct {
	InterviewId string

	Source    internal_source.QuestionSource
	Narrator  internal_narrator.Narrator
	Voice     internal_voice.Capture
	Media     internal_media.RecorderSession
	Validator internal_scorer.ResponseValidator

	// DefaultQuestionTimeSeconds applies when the question service does not
	// send a budget.
	DefaultQuestionTimeSeconds int

	// TimerOptions compresses tick intervals in tests.
	TimerOptions []internal_timer.Option
}

type controller struct {
	logger commons.Logger
	opts   Options

	mu            sync.Mutex
	state         internal_type.SessionState
	questions     []internal_type.Question
	index         int
	responses     []internal_type.Response
	budgetSeconds int
	voiceEnabled  bool
	voiceActive   bool
	typedAnswer   string
	selected      string
	evaluation    *internal_scorer.Evaluation
	closed        bool

	timer      internal_timer.QuestionTimer
	submitOnce sync.Once
	events     chan Event
}

// NewController builds a session controller. Voice input starts enabled;
// the candidate can toggle it before each question.
func NewController(logger commons.Logger, opts Options) Controller {
	c := &controller{
		logger:       logger,
		opts:         opts,
		state:        internal_type.StateNotStarted,
		voiceEnabled: true,
		events:       make(chan Event, eventBufferSize),
	}
	c.timer = internal_timer.NewQuestionTimer(logger, opts.TimerOptions...)
	return c
}

// =============================================================================
// Lifecycle
// =============================================================================

func (c *controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("session: closed")
	}
	if c.state != internal_type.StateNotStarted {
		return fmt.Errorf("session: already started in state %s", c.state)
	}

	questions, cfg, err := c.opts.Source.Load(ctx, c.opts.InterviewId)
	if err != nil {
		// No state transition has happened; the caller sees the failure
		// before anything observable changed.
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w: question set is empty", internal_type.ErrSourceUnavailable)
	}

	c.questions = questions
	c.budgetSeconds = c.opts.DefaultQuestionTimeSeconds
	if cfg != nil && cfg.TotalQuestionTimeSeconds > 0 {
		c.budgetSeconds = cfg.TotalQuestionTimeSeconds
	}

	c.index = 0
	c.enterQuestionLocked(ctx)
	return nil
}

func (c *controller) Advance(ctx context.Context) error {
	return c.advanceFrom(ctx, -1)
}

// advanceFrom is shared by manual advance and timer expiry; both paths
// finalize the current question identically. expectIndex pins an expiry to
// the question it was armed for (-1 for manual advance); a stale expiry is
// discarded under the same lock that would otherwise let it advance the
// wrong question.
func (c *controller) advanceFrom(ctx context.Context, expectIndex int) error {
	c.mu.Lock()

	switch c.state {
	case internal_type.StateNotStarted:
		c.mu.Unlock()
		return fmt.Errorf("session: not started")
	case internal_type.StateFinished, internal_type.StateTransitioning:
		// Finished: idempotent no-op. Transitioning: a second exit trigger
		// (expiry racing a manual advance) is absorbed here.
		c.mu.Unlock()
		return nil
	}

	if expectIndex >= 0 && c.index != expectIndex {
		c.mu.Unlock()
		return nil
	}

	c.state = internal_type.StateTransitioning
	c.exitQuestionLocked(ctx)

	c.index++
	if c.index < len(c.questions) {
		c.enterQuestionLocked(ctx)
		c.mu.Unlock()
		return nil
	}

	c.state = internal_type.StateFinished
	responses := append([]internal_type.Response(nil), c.responses...)
	c.mu.Unlock()

	c.submitOnce.Do(func() {
		c.submit(ctx, responses)
	})
	return nil
}

// enterQuestionLocked brings up narration, capture and the countdown for
// questions[index]. Caller holds c.mu.
func (c *controller) enterQuestionLocked(ctx context.Context) {
	question := c.questions[c.index]

	// Capture acquisition settles first; narration and the countdown only
	// start against a question whose recording state is known.
	if err := c.opts.Media.Begin(ctx); err != nil {
		if errors.Is(err, internal_type.ErrMediaAccessDenied) {
			// Degraded mode: the question proceeds without a clip.
			c.logger.Warnf("session: media access denied, continuing without recording: %v", err)
		} else {
			c.logger.Errorf("session: recorder begin failed: %v", err)
		}
	}

	if err := c.opts.Narrator.Speak(ctx, question.PromptText); err != nil {
		c.logger.Warnf("session: narration unavailable for question %d: %v", question.Id, err)
	}

	c.voiceActive = false
	if c.voiceEnabled {
		if err := c.opts.Voice.Start(ctx); err != nil {
			if errors.Is(err, internal_type.ErrVoiceUnsupported) {
				c.logger.Warnf("session: voice unsupported, falling back to typed input: %v", err)
			} else {
				c.logger.Errorf("session: voice start failed: %v", err)
			}
		} else {
			c.voiceActive = true
		}
	}

	// Callbacks are bound to this arming: a tick or expiry that raced a
	// manual advance carries the index it was armed for and is discarded
	// when the session has already moved on.
	armedIndex := c.index
	c.timer.Start(c.budgetSeconds,
		func(remaining int) { c.onTick(armedIndex, remaining) },
		func() { c.onExpire(armedIndex) })
	c.state = internal_type.StateInQuestion

	c.emit(Event{
		Type:     EventQuestionChanged,
		Question: &question,
		Index:    c.index,
	})
}

// exitQuestionLocked finalizes the current question into a Response and
// releases every per-question resource. Caller holds c.mu; state is
// Transitioning.
func (c *controller) exitQuestionLocked(ctx context.Context) {
	question := c.questions[c.index]

	c.timer.Cancel()
	c.opts.Narrator.Cancel()

	if c.voiceActive {
		if err := c.opts.Voice.Stop(ctx); err != nil {
			c.logger.Errorf("session: voice stop failed: %v", err)
		}
	}

	answer := strings.TrimSpace(c.opts.Voice.Transcript())
	if answer == "" {
		answer = strings.TrimSpace(c.typedAnswer)
	}
	if answer == "" {
		answer = c.selected
	}

	handle, err := c.opts.Media.End(ctx)
	if err != nil {
		c.logger.Errorf("session: recorder end failed: %v", err)
		handle = nil
	}

	c.responses = append(c.responses, internal_type.Response{
		QuestionId: question.Id,
		AnswerText: answer,
		Recording:  handle,
	})

	c.opts.Voice.Reset()
	c.typedAnswer = ""
	c.selected = ""
	c.voiceActive = false
}

// submit runs the single scoring call. Failure is logged and surfaced as an
// absent evaluation; the session is already Finished.
func (c *controller) submit(ctx context.Context, responses []internal_type.Response) {
	evaluation, err := c.opts.Validator.Submit(ctx, c.opts.InterviewId, responses)
	if err != nil {
		c.logger.Errorf("session: %v", err)
	}

	c.mu.Lock()
	c.evaluation = evaluation
	c.mu.Unlock()

	c.emit(Event{
		Type:       EventFinished,
		Evaluation: evaluation,
	})
}

func (c *controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	wasActive := c.state == internal_type.StateInQuestion || c.state == internal_type.StateTransitioning
	c.state = internal_type.StateFinished
	c.mu.Unlock()

	c.timer.Cancel()
	c.opts.Narrator.Cancel()

	if wasActive {
		if err := c.opts.Voice.Stop(ctx); err != nil {
			c.logger.Errorf("session: voice stop on close failed: %v", err)
		}
		// Discard the partial clip; teardown still releases the tracks.
		if _, err := c.opts.Media.End(ctx); err != nil {
			c.logger.Errorf("session: recorder end on close failed: %v", err)
		}
	}
	return nil
}

// =============================================================================
// Timer callbacks
// =============================================================================

func (c *controller) onTick(armedIndex, remaining int) {
	c.mu.Lock()
	current := c.state == internal_type.StateInQuestion && c.index == armedIndex
	c.mu.Unlock()

	if !current {
		return
	}
	c.emit(Event{
		Type:      EventTimeTick,
		Remaining: remaining,
	})
}

func (c *controller) onExpire(armedIndex int) {
	// Expiry and manual advance share the same transition. Off the timer
	// goroutine so the advance can take the session mutex freely.
	utils.Go(context.Background(), func() {
		if err := c.advanceFrom(context.Background(), armedIndex); err != nil {
			c.logger.Errorf("session: expiry advance failed: %v", err)
		}
	})
}

// =============================================================================
// Input and media
// =============================================================================

func (c *controller) SetVoiceEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.voiceEnabled = enabled
}

func (c *controller) TypeAnswer(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != internal_type.StateInQuestion {
		return
	}
	c.typedAnswer = text
}

func (c *controller) SelectOption(option string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != internal_type.StateInQuestion {
		return
	}
	c.selected = option
}

func (c *controller) Ingest(ctx context.Context, p internal_type.Packet) error {
	c.mu.Lock()
	inQuestion := c.state == internal_type.StateInQuestion
	voiceActive := c.voiceActive
	c.mu.Unlock()

	if !inQuestion {
		return nil
	}
	if err := c.opts.Media.Ingest(ctx, p); err != nil {
		c.logger.Errorf("session: media ingest failed: %v", err)
	}
	if audio, ok := p.(internal_type.UserAudioPacket); ok && voiceActive {
		if err := c.opts.Voice.Ingest(ctx, audio.Audio); err != nil {
			c.logger.Errorf("session: voice ingest failed: %v", err)
		}
	}
	return nil
}

// =============================================================================
// Read side
// =============================================================================

func (c *controller) CurrentQuestion() (*internal_type.Question, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != internal_type.StateInQuestion {
		return nil, 0, false
	}
	question := c.questions[c.index]
	return &question, c.index, true
}

func (c *controller) TimeRemaining() int {
	return c.timer.Remaining()
}

func (c *controller) Responses() []internal_type.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]internal_type.Response(nil), c.responses...)
}

func (c *controller) State() internal_type.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controller) Events() <-chan Event {
	return c.events
}

func (c *controller) Evaluation() *internal_scorer.Evaluation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evaluation
}

// emit pushes without blocking; a slow or absent subscriber costs events,
// never correctness.
func (c *controller) emit(event Event) {
	select {
	case c.events <- event:
	default:
		c.logger.Warnf("session: event buffer full, dropping %s", event.Type)
	}
}
