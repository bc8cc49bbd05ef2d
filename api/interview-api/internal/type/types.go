// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

import "time"

// Question is one interview prompt, immutable once fetched.
type Question struct {
	Id             int64    `json:"id"`
	PromptText     string   `json:"promptText"`
	ExpectedAnswer string   `json:"expectedAnswer,omitempty"`
	Options        []string `json:"options,omitempty"`
}

// SessionConfig carries the per-question budget applied uniformly to every
// question of a session.
type SessionConfig struct {
	TotalQuestionTimeSeconds int `json:"totalQuestionTimeSeconds"`
}

// RecordingHandle references a finalized clip for one question.
type RecordingHandle struct {
	Id       string        `json:"id"`
	WAV      []byte        `json:"-"`
	Duration time.Duration `json:"duration"`
	// VideoFrames is the number of raw video frames captured alongside the
	// audio clip. Zero when the camera track was unavailable.
	VideoFrames int `json:"videoFrames"`
}

// Response is the finalized record of a candidate's answer for one question.
// Created exactly once, on leaving the question; never mutated afterwards.
type Response struct {
	QuestionId int64            `json:"questionId"`
	AnswerText string           `json:"answerText"`
	Recording  *RecordingHandle `json:"recording,omitempty"`
}

// SessionState is the controller's single source of truth. Every derived
// flag (recording, listening, started) is computed from this value.
type SessionState int

const (
	StateNotStarted SessionState = iota
	StateInQuestion
	// StateTransitioning is held only while a question exit is executing.
	// A second exit trigger arriving during this window is a no-op.
	StateTransitioning
	StateFinished
)

func (s SessionState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInQuestion:
		return "in_question"
	case StateTransitioning:
		return "transitioning"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
