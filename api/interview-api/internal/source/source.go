// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
)

// QuestionSource loads the ordered question list and the per-question time
// budget for an interview. Loading happens once, before the first state
// transition; a failure here is the only hard stop in the engine.
type QuestionSource interface {
	// Load fetches and normalizes the question set for the interview.
	Load(ctx context.Context, interviewId string) ([]internal_type.Question, *internal_type.SessionConfig, error)
}

type restQuestionSource struct {
	logger commons.Logger
	client *resty.Client
}

// NewQuestionSource builds a question source against the question service
// host. The client never retries: loading is a single attempt per session
// start, and a failure surfaces immediately as ErrSourceUnavailable.
func NewQuestionSource(logger commons.Logger, host string) QuestionSource {
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(15 * time.Second)
	return &restQuestionSource{
		logger: logger,
		client: client,
	}
}

// =============================================================================
// Wire Format
// =============================================================================

// The question service nests its payload and uses tagged unions for prompt
// and option values. Everything below normalizes that shape into the flat
// internal_type.Question the engine works with.

type questionEnvelope struct {
	Success bool            `json:"success"`
	Data    questionPayload `json:"data"`
}

type questionPayload struct {
	TotalQuestionTimeSeconds int            `json:"totalQuestionTime"`
	Questions                []wireQuestion `json:"questions"`
}

type wireQuestion struct {
	Id             int64        `json:"id"`
	Prompt         wirePrompt   `json:"prompt"`
	ExpectedAnswer string       `json:"expectedAnswer"`
	Options        []wireOption `json:"options"`
}

// wirePrompt accepts either a bare string or a typed object
// ({"type":"text","text":"..."}).
type wirePrompt struct {
	Text string
}

func (p *wirePrompt) UnmarshalJSON(raw []byte) error {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		p.Text = plain
		return nil
	}
	var tagged struct {
		Type string `json:"type"`
		Text string `json:"text"`
		Ssml string `json:"ssml"`
	}
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return err
	}
	if tagged.Type == "ssml" {
		p.Text = tagged.Ssml
		return nil
	}
	p.Text = tagged.Text
	return nil
}

// wireOption accepts either a bare string or an object ({"label":"..."}).
type wireOption struct {
	Label string
}

func (o *wireOption) UnmarshalJSON(raw []byte) error {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		o.Label = plain
		return nil
	}
	var tagged struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return err
	}
	o.Label = tagged.Label
	return nil
}

// =============================================================================
// Loading
// =============================================================================

func (qs *restQuestionSource) Load(ctx context.Context, interviewId string) ([]internal_type.Question, *internal_type.SessionConfig, error) {
	var envelope questionEnvelope
	resp, err := qs.client.R().
		SetContext(ctx).
		SetResult(&envelope).
		Get(fmt.Sprintf("/v1/interview/%s/questions", interviewId))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: question fetch failed: %v", internal_type.ErrSourceUnavailable, err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("%w: question service returned %d", internal_type.ErrSourceUnavailable, resp.StatusCode())
	}

	questions := qs.normalize(envelope.Data.Questions)
	cfg := &internal_type.SessionConfig{
		TotalQuestionTimeSeconds: envelope.Data.TotalQuestionTimeSeconds,
	}
	qs.logger.Infof("question-source: loaded %d questions for interview %s", len(questions), interviewId)
	return questions, cfg, nil
}

// normalize flattens wire questions, skipping records without a usable prompt.
// A malformed payload therefore degrades to an empty set rather than an error.
func (qs *restQuestionSource) normalize(wire []wireQuestion) []internal_type.Question {
	questions := make([]internal_type.Question, 0, len(wire))
	for _, wq := range wire {
		if wq.Prompt.Text == "" {
			qs.logger.Warnf("question-source: skipping question %d with empty prompt", wq.Id)
			continue
		}
		options := make([]string, 0, len(wq.Options))
		for _, opt := range wq.Options {
			if opt.Label != "" {
				options = append(options, opt.Label)
			}
		}
		questions = append(questions, internal_type.Question{
			Id:             wq.Id,
			PromptText:     wq.Prompt.Text,
			ExpectedAnswer: wq.ExpectedAnswer,
			Options:        options,
		})
	}
	return questions
}
