// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

// Packet is a unit of candidate media arriving during a question.
type Packet interface {
	isPacket()
}

// UserAudioPacket carries LINEAR16 microphone audio.
type UserAudioPacket struct {
	Audio []byte
}

// UserVideoPacket carries one raw camera frame.
type UserVideoPacket struct {
	Frame []byte
}

// NarrationAudioPacket carries synthesized narration audio, recorded on its
// own track so playback and candidate speech never overwrite each other.
type NarrationAudioPacket struct {
	AudioChunk []byte
}

func (UserAudioPacket) isPacket()      {}
func (UserVideoPacket) isPacket()      {}
func (NarrationAudioPacket) isPacket() {}
