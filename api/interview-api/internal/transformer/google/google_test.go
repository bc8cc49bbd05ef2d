// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_google

import (
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func newTestOption(t *testing.T, opts utils.Option) *googleOption {
	t.Helper()
	gOpt, err := NewGoogleOption(commons.NewNopLogger(), &internal_transformer.Credential{
		ProjectId: "test-project",
	}, opts)
	assert.NoError(t, err)
	return gOpt
}

// --- SpeechToTextOptions Tests ---

func TestSpeechToTextOptions_Defaults(t *testing.T) {
	sttOpts := newTestOption(t, utils.Option{}).SpeechToTextOptions()

	assert.Equal(t, []string{"en-US"}, sttOpts.Config.LanguageCodes)
	assert.Equal(t, "long", sttOpts.Config.Model)
	assert.True(t, sttOpts.StreamingFeatures.InterimResults)
	assert.False(t, sttOpts.StreamingFeatures.EnableVoiceActivityEvents)

	decoding := sttOpts.Config.GetExplicitDecodingConfig()
	assert.Equal(t, int32(16000), decoding.SampleRateHertz)
	assert.Equal(t, int32(1), decoding.AudioChannelCount)
}

func TestSpeechToTextOptions_MultipleLanguages(t *testing.T) {
	sttOpts := newTestOption(t, utils.Option{
		"listen.language": "en-US, hi-IN,",
	}).SpeechToTextOptions()

	assert.Equal(t, []string{"en-US", "hi-IN"}, sttOpts.Config.LanguageCodes)
}

func TestSpeechToTextOptions_ModelOverride(t *testing.T) {
	sttOpts := newTestOption(t, utils.Option{
		"listen.model": "chirp_2",
	}).SpeechToTextOptions()

	assert.Equal(t, "chirp_2", sttOpts.Config.Model)
}

// --- TextToSpeechOptions Tests ---

func TestTextToSpeechOptions_Defaults(t *testing.T) {
	voice, audio := newTestOption(t, utils.Option{}).TextToSpeechOptions()

	assert.Equal(t, "en-US-Chirp-HD-F", voice.Name)
	assert.Equal(t, "en-US", voice.LanguageCode)
	assert.Equal(t, texttospeechpb.AudioEncoding_LINEAR16, audio.AudioEncoding)
	assert.Equal(t, int32(16000), audio.SampleRateHertz)
}

func TestTextToSpeechOptions_VoiceOverride(t *testing.T) {
	voice, _ := newTestOption(t, utils.Option{
		"speak.voice.id": "en-GB-Neural2-A",
		"speak.language": "en-GB",
	}).TextToSpeechOptions()

	assert.Equal(t, "en-GB-Neural2-A", voice.Name)
	assert.Equal(t, "en-GB", voice.LanguageCode)
}

// --- Recognizer Tests ---

func TestGetRecognizer_GlobalByDefault(t *testing.T) {
	gOpt := newTestOption(t, utils.Option{})
	assert.Equal(t, "projects/test-project/locations/global/recognizers/_", gOpt.GetRecognizer())
}

func TestGetRecognizer_Regional(t *testing.T) {
	gOpt := newTestOption(t, utils.Option{"listen.region": "asia-south1"})
	assert.Equal(t, "projects/test-project/locations/asia-south1/recognizers/_", gOpt.GetRecognizer())
}
