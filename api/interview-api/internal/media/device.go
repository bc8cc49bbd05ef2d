// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_media

import (
	"context"
	"fmt"
	"sync"

	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
)

// Track is one acquired media input (microphone or camera). Stop releases
// the underlying resource; the recorder session guarantees it is called
// exactly once per acquisition.
type Track interface {
	Kind() string
	Stop()
}

// CaptureStream is the set of tracks granted by one device acquisition.
type CaptureStream interface {
	Tracks() []Track
}

// CaptureDevice grants access to candidate media inputs. Acquisition can be
// denied (permissions, missing hardware); that is reported as
// ErrMediaAccessDenied and the session continues without recordings.
type CaptureDevice interface {
	Acquire(ctx context.Context) (CaptureStream, error)
}

// =============================================================================
// Stream-fed device
// =============================================================================

// streamTrack is a software track fed by the transport layer (candidate
// audio and frames arrive over the session websocket rather than from local
// hardware).
type streamTrack struct {
	kind string

	mu      sync.Mutex
	stopped bool
	stops   int
}

func (t *streamTrack) Kind() string { return t.kind }

func (t *streamTrack) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.stops++
}

type streamCaptureStream struct {
	tracks []Track
}

func (s *streamCaptureStream) Tracks() []Track { return s.tracks }

type streamCaptureDevice struct {
	logger commons.Logger
	denied bool
}

// NewStreamCaptureDevice builds the transport-fed capture device: every
// acquisition grants one audio and one video track.
func NewStreamCaptureDevice(logger commons.Logger) CaptureDevice {
	return &streamCaptureDevice{logger: logger}
}

// NewDeniedCaptureDevice builds a device that refuses every acquisition.
// Used when the candidate has declined media permissions up front.
func NewDeniedCaptureDevice(logger commons.Logger) CaptureDevice {
	return &streamCaptureDevice{logger: logger, denied: true}
}

func (d *streamCaptureDevice) Acquire(ctx context.Context) (CaptureStream, error) {
	if d.denied {
		return nil, fmt.Errorf("%w: capture permission declined", internal_type.ErrMediaAccessDenied)
	}
	return &streamCaptureStream{
		tracks: []Track{
			&streamTrack{kind: "audio"},
			&streamTrack{kind: "video"},
		},
	}, nil
}
