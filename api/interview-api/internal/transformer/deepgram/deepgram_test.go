// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_deepgram

import (
	"testing"

	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
	"github.com/stretchr/testify/assert"
)

// --- Constructor Tests ---

func TestNewDeepgramOption_ValidCredentials(t *testing.T) {
	opt, err := NewDeepgramOption(commons.NewNopLogger(), &internal_transformer.Credential{Key: "test-api-key"}, utils.Option{})
	assert.NoError(t, err)
	assert.NotNil(t, opt)
	assert.Equal(t, "test-api-key", opt.GetKey())
}

func TestNewDeepgramOption_MissingKey(t *testing.T) {
	opt, err := NewDeepgramOption(commons.NewNopLogger(), &internal_transformer.Credential{}, utils.Option{})
	assert.Error(t, err)
	assert.Nil(t, opt)
	assert.Contains(t, err.Error(), "illegal vault config")
}

func TestNewDeepgramOption_NilCredential(t *testing.T) {
	opt, err := NewDeepgramOption(commons.NewNopLogger(), nil, utils.Option{})
	assert.Error(t, err)
	assert.Nil(t, opt)
}

// --- Encoding Tests ---

func TestDeepgramGetEncoding(t *testing.T) {
	opt, _ := NewDeepgramOption(commons.NewNopLogger(), &internal_transformer.Credential{Key: "k"}, utils.Option{})
	assert.Equal(t, "linear16", opt.GetEncoding())
}

// --- SpeechToTextOptions Tests ---

func TestSpeechToTextOptions_Defaults(t *testing.T) {
	opt, _ := NewDeepgramOption(commons.NewNopLogger(), &internal_transformer.Credential{Key: "k"}, utils.Option{})
	sttOpts := opt.SpeechToTextOptions()

	assert.Equal(t, "nova", sttOpts.Model)
	assert.Equal(t, "en-US", sttOpts.Language)
	assert.Equal(t, 1, sttOpts.Channels)
	assert.True(t, sttOpts.SmartFormat)
	assert.True(t, sttOpts.InterimResults)
	assert.True(t, sttOpts.FillerWords)
	assert.False(t, sttOpts.VadEvents)
	assert.Equal(t, "5", sttOpts.Endpointing)
	assert.True(t, sttOpts.Punctuate)
	assert.True(t, sttOpts.NoDelay)
	assert.Equal(t, "linear16", sttOpts.Encoding)
	assert.Equal(t, 16000, sttOpts.SampleRate)
}

func TestSpeechToTextOptions_WithOverrides(t *testing.T) {
	opts := utils.Option{
		"listen.language":     "fr-FR",
		"listen.smart_format": false,
		"listen.filler_words": false,
		"listen.vad_events":   true,
		"listen.endpointing":  "10",
		"listen.model":        "nova-2",
	}
	opt, _ := NewDeepgramOption(commons.NewNopLogger(), &internal_transformer.Credential{Key: "k"}, opts)
	sttOpts := opt.SpeechToTextOptions()

	assert.Equal(t, "fr-FR", sttOpts.Language)
	assert.False(t, sttOpts.SmartFormat)
	assert.False(t, sttOpts.FillerWords)
	assert.True(t, sttOpts.VadEvents)
	assert.Equal(t, "10", sttOpts.Endpointing)
	assert.Equal(t, "nova-2", sttOpts.Model)
	// Encoding and sample rate remain hardcoded
	assert.Equal(t, "linear16", sttOpts.Encoding)
	assert.Equal(t, 16000, sttOpts.SampleRate)
}

// --- Connection String Tests ---

func TestGetSpeechToTextConnectionString(t *testing.T) {
	opt, _ := NewDeepgramOption(commons.NewNopLogger(), &internal_transformer.Credential{Key: "k"}, utils.Option{
		"listen.language": "hi-IN",
	})
	connStr := opt.GetSpeechToTextConnectionString()

	assert.Contains(t, connStr, "wss://api.deepgram.com/v1/listen?")
	assert.Contains(t, connStr, "language=hi-IN")
	assert.Contains(t, connStr, "encoding=linear16")
	assert.Contains(t, connStr, "sample_rate=16000")
	assert.Contains(t, connStr, "interim_results=true")
}
