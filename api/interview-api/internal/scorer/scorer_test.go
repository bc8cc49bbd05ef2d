// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_scorer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSendsOrderedResponsesWithRecordingFlags(t *testing.T) {
	var captured evaluateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/interview/iv-1/evaluate", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": {"score": 7.5, "verdict": "hire"}}`))
	}))
	defer server.Close()

	validator := NewResponseValidator(commons.NewNopLogger(), server.URL)
	responses := []internal_type.Response{
		{
			QuestionId: 11,
			AnswerText: "typed answer",
		},
		{
			QuestionId: 12,
			AnswerText: "spoken answer",
			Recording: &internal_type.RecordingHandle{
				Id:          "rec-1",
				Duration:    2 * time.Second,
				VideoFrames: 40,
			},
		},
	}

	evaluation, err := validator.Submit(context.Background(), "iv-1", responses)
	require.NoError(t, err)
	require.NotNil(t, evaluation)
	assert.JSONEq(t, `{"score": 7.5, "verdict": "hire"}`, string(evaluation.Result))

	require.Len(t, captured.Responses, 2)
	assert.Equal(t, int64(11), captured.Responses[0].QuestionId)
	assert.False(t, captured.Responses[0].HasRecording)
	assert.Empty(t, captured.Responses[0].RecordingId)

	assert.Equal(t, int64(12), captured.Responses[1].QuestionId)
	assert.True(t, captured.Responses[1].HasRecording)
	assert.Equal(t, "rec-1", captured.Responses[1].RecordingId)
	assert.Equal(t, int64(2000), captured.Responses[1].DurationMs)
	assert.Equal(t, 40, captured.Responses[1].VideoFrames)
}

func TestSubmitServerErrorIsValidationFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	validator := NewResponseValidator(commons.NewNopLogger(), server.URL)
	_, err := validator.Submit(context.Background(), "iv-2", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal_type.ErrValidationFailed))
}

func TestSubmitUnreachableHostIsValidationFailed(t *testing.T) {
	validator := NewResponseValidator(commons.NewNopLogger(), "http://127.0.0.1:1")
	_, err := validator.Submit(context.Background(), "iv-3", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal_type.ErrValidationFailed))
}
