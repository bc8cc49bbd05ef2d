// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_media

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
)

const (
	AudioBytesPerSample = 2  // LINEAR16 → 2 bytes per sample
	AudioBitsPerSample  = 16 // LINEAR16 → 16 bits per sample
	AudioPCMFormat      = 1  // WAV PCM format tag
)

var audioConfig = internal_transformer.DefaultAudioConfig

// Recorder captures one question's media onto a wall-clock timeline.
// Candidate audio and narration audio land on separate tracks; video frames
// are counted, not stored.
type Recorder interface {
	// Start begins the recording timeline. All subsequent Record calls are
	// placed on a wall-clock timeline relative to this moment.
	Start()
	// Record places one media packet on the timeline.
	Record(context.Context, internal_type.Packet) error
	// Persist renders the candidate and narration tracks as WAV files.
	Persist() ([]byte, []byte, error)
	// Duration is the elapsed timeline length since Start.
	Duration() time.Duration
	// VideoFrames is the count of camera frames seen since Start.
	VideoFrames() int
}

// chunk is a recorded audio fragment placed at a specific position on the
// timeline. ByteOffset is the byte position relative to Start().
type chunk struct {
	ByteOffset int
	Data       []byte
	Track      int // trackUser or trackNarration
}

const (
	trackUser      = 0
	trackNarration = 1
)

type clipRecorder struct {
	logger      commons.Logger
	mu          sync.Mutex
	startTime   time.Time
	started     bool
	chunks      []chunk
	videoFrames int
	// Per-track cursor: the byte position just past the last written byte on
	// each track. For the user track wall-clock placement is used. For the
	// narration (TTS) track the cursor paces audio at the playback rate —
	// only the first chunk after a gap uses wall-clock to anchor position.
	cursor [2]int
	// clock is injectable for testing; defaults to time.Now.
	clock func() time.Time
}

func NewClipRecorder(logger commons.Logger) Recorder {
	return &clipRecorder{
		logger: logger,
		clock:  time.Now,
	}
}

// Start begins the recording clip. Both tracks share this start time.
// Audio is placed on the timeline based on when it arrives relative to
// this moment.
func (r *clipRecorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startTime = r.clock()
	r.started = true
}

func bytesPerSecond() int {
	return int(audioConfig.SampleRate) * int(audioConfig.Channels) * AudioBytesPerSample
}

// durationBytes converts a wall-clock duration to a frame-aligned byte count.
func durationBytes(d time.Duration) int {
	raw := int(d.Seconds() * float64(bytesPerSecond()))
	frameSize := AudioBytesPerSample * int(audioConfig.Channels)
	return (raw / frameSize) * frameSize
}

// Record places media on the appropriate track at the current wall-clock
// position. Each chunk is positioned based on WHEN it arrives, not just
// appended. Both tracks share the same timeline (Start → Persist).
func (r *clipRecorder) Record(ctx context.Context, p internal_type.Packet) error {
	switch vl := p.(type) {
	case internal_type.UserAudioPacket:
		return r.push(vl.Audio, trackUser)
	case internal_type.NarrationAudioPacket:
		return r.push(vl.AudioChunk, trackNarration)
	case internal_type.UserVideoPacket:
		r.mu.Lock()
		r.videoFrames++
		r.mu.Unlock()
		return nil
	}
	return nil
}

func (r *clipRecorder) push(data []byte, track int) error {
	if len(data) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// Compute wall-clock byte offset.
	wallOffset := 0
	if r.started {
		wallOffset = durationBytes(r.clock().Sub(r.startTime))
	}

	var offset int
	switch track {
	case trackUser:
		// User (mic) audio: wall-clock placement. Mic delivers at real-time
		// rate, so wall-clock offset is the correct timeline position.
		offset = wallOffset
		if r.cursor[track] > offset {
			offset = r.cursor[track]
		}

	case trackNarration:
		// TTS audio: PACING. TTS delivers audio in bursts (faster than
		// real-time). We pace it at the playback rate on the timeline:
		//
		//   - First chunk after silence (cursor <= wallOffset): anchor at
		//     wall-clock offset.
		//   - Subsequent burst chunks (cursor > wallOffset): place at cursor
		//     so audio is continuous at the playback rate with no gaps.
		if r.cursor[track] > wallOffset {
			// Burst continuation: pace from cursor.
			offset = r.cursor[track]
		} else {
			// New narration segment: anchor at wall-clock.
			offset = wallOffset
		}
	}

	// Copy to avoid caller mutations.
	buf := make([]byte, len(data))
	copy(buf, data)

	r.chunks = append(r.chunks, chunk{
		ByteOffset: offset,
		Data:       buf,
		Track:      track,
	})
	// Advance cursor past this chunk.
	r.cursor[track] = offset + len(buf)
	return nil
}

func (r *clipRecorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return 0
	}
	return r.clock().Sub(r.startTime)
}

func (r *clipRecorder) VideoFrames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videoFrames
}

// Persist renders two WAV files — one per track. Both WAVs span the full
// clip duration (Start → Persist). Audio chunks are placed at their
// recorded timeline positions; gaps are silence.
func (r *clipRecorder) Persist() ([]byte, []byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.chunks) == 0 {
		return nil, nil, fmt.Errorf("no audio chunks to persist")
	}

	// Total clip duration in bytes.
	clipBytes := 0
	if r.started {
		clipBytes = durationBytes(r.clock().Sub(r.startTime))
	}

	// Determine the minimum buffer size: max(clipBytes, furthest chunk end).
	totalLen := clipBytes
	for _, c := range r.chunks {
		end := c.ByteOffset + len(c.Data)
		if end > totalLen {
			totalLen = end
		}
	}

	// Allocate zero-filled (silence) buffers for each track.
	userPCM := make([]byte, totalLen)
	narrationPCM := make([]byte, totalLen)

	// Paint each chunk onto its track buffer.
	userAudioBytes := 0
	narrationAudioBytes := 0
	for _, c := range r.chunks {
		var dst []byte
		if c.Track == trackUser {
			dst = userPCM
			userAudioBytes += len(c.Data)
		} else {
			dst = narrationPCM
			narrationAudioBytes += len(c.Data)
		}
		copy(dst[c.ByteOffset:], c.Data)
	}

	r.logger.Info(fmt.Sprintf(
		"clip persist: userAudio=%d (%.2fs), narrationAudio=%d (%.2fs), totalLen=%d (%.2fs), chunks=%d, frames=%d",
		userAudioBytes, float64(userAudioBytes)/float64(bytesPerSecond()),
		narrationAudioBytes, float64(narrationAudioBytes)/float64(bytesPerSecond()),
		totalLen, float64(totalLen)/float64(bytesPerSecond()),
		len(r.chunks), r.videoFrames,
	))

	userWAV, _ := createWAVFile(userPCM)
	narrationWAV, _ := createWAVFile(narrationPCM)
	return userWAV, narrationWAV, nil
}

func createWAVFile(pcmData []byte) ([]byte, error) {
	var buf bytes.Buffer
	sampleRate := audioConfig.SampleRate
	channels := audioConfig.Channels
	bps := int(sampleRate) * int(channels) * AudioBytesPerSample

	buf.Write([]byte("RIFF"))
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcmData)))
	buf.Write([]byte("WAVE"))

	buf.Write([]byte("fmt "))
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioPCMFormat))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(bps))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBytesPerSample))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBitsPerSample))

	// data chunk
	buf.Write([]byte("data"))
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcmData)))
	buf.Write(pcmData)

	return buf.Bytes(), nil
}
