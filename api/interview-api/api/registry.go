// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package interview_api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	internal_media "github.com/rapidaai/interview-api/api/interview-api/internal/media"
	internal_narrator "github.com/rapidaai/interview-api/api/interview-api/internal/narrator"
	internal_normalizers "github.com/rapidaai/interview-api/api/interview-api/internal/normalizers"
	internal_scorer "github.com/rapidaai/interview-api/api/interview-api/internal/scorer"
	internal_session "github.com/rapidaai/interview-api/api/interview-api/internal/session"
	internal_source "github.com/rapidaai/interview-api/api/interview-api/internal/source"
	internal_store "github.com/rapidaai/interview-api/api/interview-api/internal/store"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	internal_voice "github.com/rapidaai/interview-api/api/interview-api/internal/voice"
	"github.com/rapidaai/interview-api/config"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
)

const (
	sessionEventBufferSize = 64
	narrationBufferSize    = 128
)

// narrationPipeline is applied to every utterance before synthesis.
var narrationPipeline = []string{"number", "symbol", "general-abbreviation", "tech-abbreviation"}

// Session is one live interview held by the registry: the controller, its
// narration plumbing and the fan-out channels the websocket consumes.
type Session struct {
	Id          string
	InterviewId string
	StartedAt   time.Time

	ctrl     internal_session.Controller
	narrator internal_narrator.Narrator

	// events re-broadcasts controller notifications to the websocket; the
	// pump owns the writes. narration carries synthesized audio for playback.
	events    chan internal_session.Event
	narration chan []byte

	cancel context.CancelFunc

	mu       sync.Mutex
	archived bool
}

// Controller exposes the session's state machine to the handlers.
func (s *Session) Controller() internal_session.Controller { return s.ctrl }

// Events is the re-broadcast notification stream for this session.
func (s *Session) Events() <-chan internal_session.Event { return s.events }

// Narration streams synthesized narration audio for client playback.
func (s *Session) Narration() <-chan []byte { return s.narration }

// SessionRegistry owns every live session: creation, lookup and teardown.
// Finished sessions are archived by the per-session pump before the entry
// is dropped.
type SessionRegistry struct {
	logger commons.Logger
	cfg    *config.AppConfig
	store  internal_store.Store

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionRegistry builds an empty registry over the archive store.
func NewSessionRegistry(cfg *config.AppConfig, logger commons.Logger, store internal_store.Store) *SessionRegistry {
	return &SessionRegistry{
		logger:   logger,
		cfg:      cfg,
		store:    store,
		sessions: make(map[string]*Session),
	}
}

// CreateOptions shapes one session at creation time.
type CreateOptions struct {
	InterviewId string

	// VoiceEnabled seeds the controller's voice toggle.
	VoiceEnabled bool

	// MediaGranted reflects the candidate's capture permission; a denied
	// grant runs the session without clips.
	MediaGranted bool
}

// Create assembles a full session: speech providers, narrator, capture,
// recorder, controller and the event pump. The session is registered but not
// started; Start on the controller begins the first question.
func (r *SessionRegistry) Create(ctx context.Context, opts CreateOptions) (*Session, error) {
	if opts.InterviewId == "" {
		return nil, fmt.Errorf("registry: interview id is required")
	}

	sessionCtx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		Id:          uuid.NewString(),
		InterviewId: opts.InterviewId,
		StartedAt:   time.Now(),
		events:      make(chan internal_session.Event, sessionEventBufferSize),
		narration:   make(chan []byte, narrationBufferSize),
		cancel:      cancel,
	}

	synthesizer, err := newSynthesizer(sessionCtx, r.logger, r.cfg, func(contextId string, audio []byte) {
		sess.onNarration(sessionCtx, audio)
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("registry: synthesizer for %s failed: %w", opts.InterviewId, err)
	}
	if err := synthesizer.Initialize(); err != nil {
		cancel()
		return nil, fmt.Errorf("registry: synthesizer init for %s failed: %w", opts.InterviewId, err)
	}

	pipeline := internal_normalizers.BuildPipeline(r.logger, narrationPipeline)
	sess.narrator = internal_narrator.NewNarrator(sessionCtx, r.logger, synthesizer, pipeline)

	voice := internal_voice.NewCapture(r.logger, newRecognizerFactory(r.logger, r.cfg), listenOptions(r.cfg))

	device := internal_media.NewStreamCaptureDevice(r.logger)
	if !opts.MediaGranted {
		device = internal_media.NewDeniedCaptureDevice(r.logger)
	}
	media := internal_media.NewRecorderSession(r.logger, device)

	sess.ctrl = internal_session.NewController(r.logger, internal_session.Options{
		InterviewId:                opts.InterviewId,
		Source:                     internal_source.NewQuestionSource(r.logger, r.cfg.QuestionHost),
		Narrator:                   sess.narrator,
		Voice:                      voice,
		Media:                      media,
		Validator:                  internal_scorer.NewResponseValidator(r.logger, r.cfg.ScoringHost),
		DefaultQuestionTimeSeconds: r.cfg.DefaultQuestionTimeSeconds,
	})
	sess.ctrl.SetVoiceEnabled(opts.VoiceEnabled)

	utils.Go(sessionCtx, func() { r.pump(sessionCtx, sess) })

	r.mu.Lock()
	r.sessions[sess.Id] = sess
	r.mu.Unlock()

	r.logger.Infof("registry: session %s created for interview %s", sess.Id, opts.InterviewId)
	return sess, nil
}

// Get returns a live session by id.
func (r *SessionRegistry) Get(sessionId string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sessionId]
	return sess, ok
}

// Remove tears a session down and drops it from the registry. Safe on a
// session that already finished; closing is idempotent.
func (r *SessionRegistry) Remove(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	sess, ok := r.sessions[sessionId]
	delete(r.sessions, sessionId)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("registry: session %s not found", sessionId)
	}

	if err := sess.ctrl.Close(ctx); err != nil {
		r.logger.Errorf("registry: closing session %s: %v", sessionId, err)
	}
	if err := sess.narrator.Close(ctx); err != nil {
		r.logger.Errorf("registry: closing narrator for %s: %v", sessionId, err)
	}
	sess.cancel()
	return nil
}

// Close tears down every live session, used on shutdown.
func (r *SessionRegistry) Close(ctx context.Context) {
	r.mu.Lock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		if err := r.Remove(ctx, id); err != nil {
			r.logger.Warnf("registry: %v", err)
		}
	}
}

// pump forwards controller events to the session's subscriber channel and
// archives the session when it finishes. Forwarding never blocks; a slow
// websocket loses events, not the session.
func (r *SessionRegistry) pump(ctx context.Context, sess *Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-sess.ctrl.Events():
			select {
			case sess.events <- event:
			default:
				r.logger.Warnf("registry: subscriber for %s is slow, dropping %s", sess.Id, event.Type)
			}
			if event.Type == internal_session.EventFinished {
				r.archive(ctx, sess)
			}
		}
	}
}

// archive persists the finished session. Best-effort: a storage failure is
// logged, the in-memory session stays queryable until removed.
func (r *SessionRegistry) archive(ctx context.Context, sess *Session) {
	sess.mu.Lock()
	if sess.archived {
		sess.mu.Unlock()
		return
	}
	sess.archived = true
	sess.mu.Unlock()

	responses := sess.ctrl.Responses()
	row := &internal_store.InterviewSession{
		Id:            sess.Id,
		InterviewId:   sess.InterviewId,
		Status:        "FINISHED",
		QuestionCount: len(responses),
		StartedAt:     sess.StartedAt,
		FinishedAt:    time.Now(),
	}
	if evaluation := sess.ctrl.Evaluation(); evaluation != nil {
		row.Evaluation = []byte(evaluation.Result)
	}

	rows := make([]*internal_store.InterviewResponse, 0, len(responses))
	for position, response := range responses {
		responseRow := &internal_store.InterviewResponse{
			QuestionId: response.QuestionId,
			Position:   position,
			AnswerText: response.AnswerText,
		}
		if response.Recording != nil {
			responseRow.RecordingId = response.Recording.Id
			responseRow.RecordingDurationMs = response.Recording.Duration.Milliseconds()
			responseRow.VideoFrames = response.Recording.VideoFrames
		}
		rows = append(rows, responseRow)
	}

	if err := r.store.ArchiveSession(ctx, row, rows); err != nil {
		r.logger.Errorf("registry: %v", err)
		return
	}
	r.logger.Infof("registry: session %s archived with %d responses", sess.Id, len(rows))
}

// onNarration fans synthesized audio into the recorder's narration track and
// the playback channel.
func (s *Session) onNarration(ctx context.Context, audio []byte) {
	if err := s.ctrl.Ingest(ctx, internal_type.NarrationAudioPacket{AudioChunk: audio}); err != nil {
		return
	}
	select {
	case s.narration <- audio:
	default:
	}
}
