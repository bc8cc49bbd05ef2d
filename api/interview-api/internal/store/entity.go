// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_store

import "time"

// InterviewSession is the archive row for one finished session.
type InterviewSession struct {
	Id            string    `json:"id" gorm:"type:uuid;primaryKey"`
	InterviewId   string    `json:"interviewId" gorm:"type:varchar(64);not null;index"`
	Status        string    `json:"status" gorm:"type:varchar(32);not null;default:FINISHED"`
	QuestionCount int       `json:"questionCount" gorm:"type:int;not null"`
	StartedAt     time.Time `json:"startedAt" gorm:"not null"`
	FinishedAt    time.Time `json:"finishedAt" gorm:"not null"`
	// Evaluation holds the scoring verdict as delivered; null when scoring
	// failed or the session was aborted.
	Evaluation []byte `json:"evaluation" gorm:"type:jsonb"`

	Responses []*InterviewResponse `json:"responses" gorm:"foreignKey:SessionId"`
}

// InterviewResponse is the archive row for one answered question.
type InterviewResponse struct {
	Id         uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionId  string `json:"sessionId" gorm:"type:uuid;not null;index"`
	QuestionId int64  `json:"questionId" gorm:"type:bigint;not null"`
	Position   int    `json:"position" gorm:"type:int;not null"`
	AnswerText string `json:"answerText" gorm:"type:text"`

	// Recording metadata; zero values when the question ran without media.
	RecordingId         string `json:"recordingId" gorm:"type:varchar(64)"`
	RecordingDurationMs int64  `json:"recordingDurationMs" gorm:"type:bigint"`
	VideoFrames         int    `json:"videoFrames" gorm:"type:int"`
}

// CREATE TABLE interview_sessions (
//     id UUID PRIMARY KEY,
//     interview_id VARCHAR(64) NOT NULL,
//     status VARCHAR(32) NOT NULL DEFAULT 'FINISHED',
//     question_count INT NOT NULL,
//     started_at TIMESTAMP NOT NULL,
//     finished_at TIMESTAMP NOT NULL,
//     evaluation JSONB
// );
//
// CREATE TABLE interview_responses (
//     id BIGSERIAL PRIMARY KEY,
//     session_id UUID NOT NULL REFERENCES interview_sessions(id),
//     question_id BIGINT NOT NULL,
//     position INT NOT NULL,
//     answer_text TEXT,
//     recording_id VARCHAR(64),
//     recording_duration_ms BIGINT,
//     video_frames INT
// );
