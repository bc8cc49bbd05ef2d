// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_google

import (
	"fmt"
	"strings"

	"cloud.google.com/go/speech/apiv2/speechpb"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
	"google.golang.org/api/option"
)

// Introduced constants for default values
const (
	DefaultLanguageCode = "en-US"            // Default language code for Speech-to-Text
	DefaultModel        = "default"          // Default model used for Speech recognition
	DefaultVoice        = "en-US-Chirp-HD-F" // Default voice for Text-to-Speech
)

// googleOption is the primary configuration structure for Google services
type googleOption struct {
	logger       commons.Logger
	clientOptons []option.ClientOption
	mdlOpts      utils.Option
	projectId    string
}

// NewGoogleOption initializes googleOption with provided credentials, audio configurations, and options.
func NewGoogleOption(logger commons.Logger, credential *internal_transformer.Credential, opts utils.Option) (*googleOption, error) {

	co := make([]option.ClientOption, 0)
	var projectID string
	if credential.Key != "" {
		co = append(co, option.WithAPIKey(credential.Key))
	}
	if credential.ProjectId != "" {
		projectID = credential.ProjectId
		co = append(co, option.WithQuotaProject(credential.ProjectId))
	}
	if credential.ServiceAccountKey != "" {
		co = append(co, option.WithCredentialsJSON([]byte(credential.ServiceAccountKey)))
	}

	return &googleOption{
		logger:       logger,
		mdlOpts:      opts,
		clientOptons: co,
		projectId:    projectID,
	}, nil
}

// GetClientOptions returns all configured Google API client options.
func (gO *googleOption) GetClientOptions() []option.ClientOption {
	return gO.clientOptons
}

// SpeechToTextOptions generates a configuration for Google Speech-to-Text streaming recognition.
// Default language and model are used unless overridden via mdlOpts.
func (gog *googleOption) SpeechToTextOptions() *speechpb.StreamingRecognitionConfig {
	opts := &speechpb.StreamingRecognitionConfig{
		Config: &speechpb.RecognitionConfig{
			DecodingConfig: &speechpb.RecognitionConfig_ExplicitDecodingConfig{
				ExplicitDecodingConfig: &speechpb.ExplicitDecodingConfig{
					Encoding:          speechpb.ExplicitDecodingConfig_LINEAR16,
					SampleRateHertz:   internal_transformer.DefaultAudioConfig.SampleRate,
					AudioChannelCount: internal_transformer.DefaultAudioConfig.Channels,
				},
			},
			Features: &speechpb.RecognitionFeatures{
				EnableAutomaticPunctuation: true,
				EnableWordConfidence:       true,
				ProfanityFilter:            true,
				EnableSpokenPunctuation:    true,
			},
			LanguageCodes: []string{DefaultLanguageCode},
			Model:         "long",
		},
		StreamingFeatures: &speechpb.StreamingRecognitionFeatures{
			EnableVoiceActivityEvents: false,
			InterimResults:            true,
		},
	}

	if language, err := gog.mdlOpts.GetString("listen.language"); err == nil {
		codes := strings.Split(language, commons.SEPARATOR)
		nonEmptyCodes := []string{}
		for _, code := range codes {
			code = strings.TrimSpace(code)
			if code != "" {
				nonEmptyCodes = append(nonEmptyCodes, code)
			}
		}
		opts.Config.LanguageCodes = nonEmptyCodes
	} else {
		gog.logger.Warn("Language not specified, defaulting to " + DefaultLanguageCode)
	}

	if model, err := gog.mdlOpts.GetString("listen.model"); err == nil {
		opts.Config.Model = model
	} else {
		gog.logger.Warn("Model not specified, defaulting to " + DefaultModel)
	}

	return opts
}

// TextToSpeechOptions generates the voice and audio configuration for Google Text-to-Speech.
func (goog *googleOption) TextToSpeechOptions() (*texttospeechpb.VoiceSelectionParams, *texttospeechpb.AudioConfig) {
	voice := &texttospeechpb.VoiceSelectionParams{
		LanguageCode: DefaultLanguageCode,
		Name:         DefaultVoice,
	}
	audio := &texttospeechpb.AudioConfig{
		AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
		SampleRateHertz: internal_transformer.DefaultAudioConfig.SampleRate,
	}

	// Override voice configuration if specified in options
	if name, err := goog.mdlOpts.GetString("speak.voice.id"); err == nil {
		voice.Name = name
	} else {
		goog.logger.Warn("Voice not specified, defaulting to " + DefaultVoice)
	}
	if language, err := goog.mdlOpts.GetString("speak.language"); err == nil {
		voice.LanguageCode = language
	}

	return voice, audio
}

func (gog *googleOption) GetRecognizer() string {
	if region, err := gog.mdlOpts.GetString("listen.region"); err == nil {
		if region != "global" {
			return fmt.Sprintf("projects/%s/locations/%s/recognizers/_", gog.projectId, region)
		}
	}
	return fmt.Sprintf("projects/%s/locations/global/recognizers/_", gog.projectId)
}

func (gog *googleOption) GetSpeechToTextClientOptions() []option.ClientOption {
	if region, err := gog.mdlOpts.GetString("listen.region"); err == nil {
		if region != "global" {
			return append(gog.clientOptons, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:443", region)))
		}
	}
	return gog.clientOptons
}
