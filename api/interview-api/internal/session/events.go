// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_session

import (
	internal_scorer "github.com/rapidaai/interview-api/api/interview-api/internal/scorer"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
)

// EventType identifies a controller notification.
type EventType string

const (
	// EventQuestionChanged fires when a question becomes current.
	EventQuestionChanged EventType = "question_changed"
	// EventTimeTick fires once per countdown second of the current question.
	EventTimeTick EventType = "time_tick"
	// EventFinished fires once, when the session reaches its terminal state.
	EventFinished EventType = "finished"
)

// Event is one controller notification. The presentation layer subscribes
// to these instead of polling session state; correctness of the state
// machine never depends on anyone consuming them.
type Event struct {
	Type EventType `json:"type"`

	// Question and Index are set on EventQuestionChanged.
	Question *internal_type.Question `json:"question,omitempty"`
	Index    int                     `json:"index,omitempty"`

	// Remaining is set on EventTimeTick.
	Remaining int `json:"remaining,omitempty"`

	// Evaluation is set on EventFinished when scoring succeeded.
	Evaluation *internal_scorer.Evaluation `json:"evaluation,omitempty"`
}
