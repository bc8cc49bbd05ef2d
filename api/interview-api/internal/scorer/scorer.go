// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
)

// Evaluation is the scoring service's verdict, opaque to the engine. The
// presentation layer renders it as-is.
type Evaluation struct {
	Result json.RawMessage `json:"result"`
}

// ResponseValidator submits the finished response list for scoring. Called
// exactly once per session, at the Finished transition; a failure is
// reported as ErrValidationFailed and never blocks termination.
type ResponseValidator interface {
	Submit(ctx context.Context, interviewId string, responses []internal_type.Response) (*Evaluation, error)
}

type restResponseValidator struct {
	logger commons.Logger
	client *resty.Client
}

// NewResponseValidator builds a validator against the scoring service host.
func NewResponseValidator(logger commons.Logger, host string) ResponseValidator {
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(20 * time.Second)
	return &restResponseValidator{
		logger: logger,
		client: client,
	}
}

// =============================================================================
// Wire Format
// =============================================================================

type evaluateRequest struct {
	Responses []evaluateResponse `json:"responses"`
}

// evaluateResponse flags recording presence explicitly so the grader can
// distinguish "no clip captured" from "empty clip".
type evaluateResponse struct {
	QuestionId   int64  `json:"questionId"`
	AnswerText   string `json:"answerText"`
	HasRecording bool   `json:"hasRecording"`
	RecordingId  string `json:"recordingId,omitempty"`
	DurationMs   int64  `json:"durationMs,omitempty"`
	VideoFrames  int    `json:"videoFrames,omitempty"`
}

func (rv *restResponseValidator) Submit(ctx context.Context, interviewId string, responses []internal_type.Response) (*Evaluation, error) {
	payload := evaluateRequest{
		Responses: make([]evaluateResponse, 0, len(responses)),
	}
	for _, r := range responses {
		er := evaluateResponse{
			QuestionId: r.QuestionId,
			AnswerText: r.AnswerText,
		}
		if r.Recording != nil {
			er.HasRecording = true
			er.RecordingId = r.Recording.Id
			er.DurationMs = r.Recording.Duration.Milliseconds()
			er.VideoFrames = r.Recording.VideoFrames
		}
		payload.Responses = append(payload.Responses, er)
	}

	var evaluation Evaluation
	resp, err := rv.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&evaluation).
		Post(fmt.Sprintf("/v1/interview/%s/evaluate", interviewId))
	if err != nil {
		return nil, fmt.Errorf("%w: evaluation call failed: %v", internal_type.ErrValidationFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: scoring service returned %d", internal_type.ErrValidationFailed, resp.StatusCode())
	}

	rv.logger.Infof("scorer: evaluated %d responses for interview %s", len(responses), interviewId)
	return &evaluation, nil
}
