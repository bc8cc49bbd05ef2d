// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_media

import (
	"context"
	"sync"

	"github.com/google/uuid"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
)

// RecorderSession scopes media acquisition to one question: Begin acquires
// the capture device and starts a fresh clip, End stops every track exactly
// once and renders the clip. End is idempotent; an End without a matching
// Begin is a no-op.
type RecorderSession interface {
	// Begin acquires the capture device and starts the clip timeline.
	// Returns ErrMediaAccessDenied when the device refuses; the session
	// then runs without a recording.
	Begin(ctx context.Context) error

	// Ingest places one media packet on the active clip. Packets arriving
	// outside Begin/End are dropped.
	Ingest(ctx context.Context, p internal_type.Packet) error

	// End releases the tracks and returns the finished clip. Returns
	// (nil, nil) when no clip is active.
	End(ctx context.Context) (*internal_type.RecordingHandle, error)

	IsRecording() bool
}

type recorderSession struct {
	logger      commons.Logger
	device      CaptureDevice
	newRecorder func() Recorder

	mu       sync.Mutex
	active   bool
	stream   CaptureStream
	recorder Recorder
}

// NewRecorderSession wires a recorder session over a capture device.
func NewRecorderSession(logger commons.Logger, device CaptureDevice) RecorderSession {
	return &recorderSession{
		logger: logger,
		device: device,
		newRecorder: func() Recorder {
			return NewClipRecorder(logger)
		},
	}
}

func (rs *recorderSession) Begin(ctx context.Context) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.active {
		return nil
	}

	stream, err := rs.device.Acquire(ctx)
	if err != nil {
		return err
	}

	recorder := rs.newRecorder()
	recorder.Start()

	rs.stream = stream
	rs.recorder = recorder
	rs.active = true
	return nil
}

func (rs *recorderSession) Ingest(ctx context.Context, p internal_type.Packet) error {
	rs.mu.Lock()
	recorder := rs.recorder
	active := rs.active
	rs.mu.Unlock()

	if !active || recorder == nil {
		return nil
	}
	return recorder.Record(ctx, p)
}

func (rs *recorderSession) End(ctx context.Context) (*internal_type.RecordingHandle, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.active {
		return nil, nil
	}
	rs.active = false

	// Track teardown happens exactly once per Begin, on every exit path.
	for _, track := range rs.stream.Tracks() {
		track.Stop()
	}
	rs.stream = nil

	recorder := rs.recorder
	rs.recorder = nil

	userWAV, _, err := recorder.Persist()
	if err != nil {
		// An empty clip (no packets arrived) is not an error for the
		// session; it just means no recording for this question.
		rs.logger.Warnf("media: no clip rendered: %v", err)
		return nil, nil
	}

	return &internal_type.RecordingHandle{
		Id:          uuid.NewString(),
		WAV:         userWAV,
		Duration:    recorder.Duration(),
		VideoFrames: recorder.VideoFrames(),
	}, nil
}

func (rs *recorderSession) IsRecording() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.active
}
