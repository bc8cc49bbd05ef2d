// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_media

import (
	"context"
	"errors"
	"testing"

	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Recorder Session Tests
// =============================================================================

func TestSessionBeginIngestEnd(t *testing.T) {
	session := NewRecorderSession(commons.NewNopLogger(), NewStreamCaptureDevice(commons.NewNopLogger()))
	ctx := context.Background()

	require.NoError(t, session.Begin(ctx))
	assert.True(t, session.IsRecording())

	require.NoError(t, session.Ingest(ctx, internal_type.UserAudioPacket{Audio: pcm(0x01, 640)}))
	require.NoError(t, session.Ingest(ctx, internal_type.UserVideoPacket{Frame: pcm(0x02, 16)}))

	handle, err := session.End(ctx)
	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.NotEmpty(t, handle.Id)
	assert.Equal(t, 1, handle.VideoFrames)
	assert.Equal(t, "RIFF", string(handle.WAV[0:4]))
	assert.False(t, session.IsRecording())
}

func TestSessionTrackStopExactlyOncePerBegin(t *testing.T) {
	device := NewStreamCaptureDevice(commons.NewNopLogger())
	session := NewRecorderSession(commons.NewNopLogger(), device).(*recorderSession)
	ctx := context.Background()

	require.NoError(t, session.Begin(ctx))
	stream := session.stream.(*streamCaptureStream)
	require.NoError(t, session.Ingest(ctx, internal_type.UserAudioPacket{Audio: pcm(0x01, 64)}))

	_, err := session.End(ctx)
	require.NoError(t, err)

	// Second and third End: no-ops, no double stop.
	handle, err := session.End(ctx)
	require.NoError(t, err)
	assert.Nil(t, handle)
	_, _ = session.End(ctx)

	for _, track := range stream.tracks {
		st := track.(*streamTrack)
		assert.Equal(t, 1, st.stops, "track %s stopped %d times", st.kind, st.stops)
	}
}

func TestSessionEndWithoutBeginIsNoop(t *testing.T) {
	session := NewRecorderSession(commons.NewNopLogger(), NewStreamCaptureDevice(commons.NewNopLogger()))

	handle, err := session.End(context.Background())
	require.NoError(t, err)
	assert.Nil(t, handle)
}

func TestSessionEmptyClipYieldsNoHandle(t *testing.T) {
	session := NewRecorderSession(commons.NewNopLogger(), NewStreamCaptureDevice(commons.NewNopLogger()))
	ctx := context.Background()

	require.NoError(t, session.Begin(ctx))
	handle, err := session.End(ctx)
	require.NoError(t, err)
	assert.Nil(t, handle)
}

func TestSessionDeniedDeviceReturnsMediaAccessDenied(t *testing.T) {
	session := NewRecorderSession(commons.NewNopLogger(), NewDeniedCaptureDevice(commons.NewNopLogger()))
	ctx := context.Background()

	err := session.Begin(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal_type.ErrMediaAccessDenied))
	assert.False(t, session.IsRecording())

	// Packets while not recording are dropped, End is a no-op.
	require.NoError(t, session.Ingest(ctx, internal_type.UserAudioPacket{Audio: pcm(0x01, 64)}))
	handle, err := session.End(ctx)
	require.NoError(t, err)
	assert.Nil(t, handle)
}

func TestSessionBeginTwiceIsIdempotent(t *testing.T) {
	session := NewRecorderSession(commons.NewNopLogger(), NewStreamCaptureDevice(commons.NewNopLogger()))
	ctx := context.Background()

	require.NoError(t, session.Begin(ctx))
	require.NoError(t, session.Begin(ctx))
	require.NoError(t, session.Ingest(ctx, internal_type.UserAudioPacket{Audio: pcm(0x01, 64)}))

	handle, err := session.End(ctx)
	require.NoError(t, err)
	require.NotNil(t, handle)
}
