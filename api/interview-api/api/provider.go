// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package interview_api

import (
	"context"

	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	internal_transformer_deepgram "github.com/rapidaai/interview-api/api/interview-api/internal/transformer/deepgram"
	internal_transformer_google "github.com/rapidaai/interview-api/api/interview-api/internal/transformer/google"
	internal_voice "github.com/rapidaai/interview-api/api/interview-api/internal/voice"
	"github.com/rapidaai/interview-api/config"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
)

// googleCredential maps the configured credential material for Google
// providers.
func googleCredential(cfg *config.AppConfig) *internal_transformer.Credential {
	return &internal_transformer.Credential{
		ProjectId:         cfg.SpeechConfig.GoogleProjectId,
		ServiceAccountKey: cfg.SpeechConfig.GoogleCredentialJson,
	}
}

func listenOptions(cfg *config.AppConfig) utils.Option {
	return utils.Option{
		"listen.language": cfg.SpeechConfig.ListenLanguage,
	}
}

func speakOptions(cfg *config.AppConfig) utils.Option {
	return utils.Option{
		"speak.voice.id": cfg.SpeechConfig.SpeakVoice,
	}
}

// newSynthesizer builds the narration synthesizer. Narration is Google-only;
// the listen provider switch does not apply to it.
func newSynthesizer(ctx context.Context,
	logger commons.Logger,
	cfg *config.AppConfig,
	onSpeech func(contextId string, audio []byte),
) (internal_transformer.TextToSpeechTransformer, error) {
	return internal_transformer_google.NewGoogleTextToSpeech(ctx, logger, googleCredential(cfg),
		&internal_transformer.TextToSpeechInitializeOptions{
			AudioConfig:  internal_transformer.DefaultAudioConfig,
			ModelOptions: speakOptions(cfg),
			OnSpeech:     onSpeech,
		})
}

// newRecognizerFactory returns the per-question recognizer constructor for
// the configured listen provider.
func newRecognizerFactory(logger commons.Logger, cfg *config.AppConfig) internal_voice.RecognizerFactory {
	switch cfg.SpeechConfig.ListenProvider {
	case "deepgram":
		return func(ctx context.Context, opts *internal_transformer.SpeechToTextInitializeOptions) (internal_transformer.SpeechToTextTransformer, error) {
			return internal_transformer_deepgram.NewDeepgramSpeechToText(ctx, logger,
				&internal_transformer.Credential{Key: cfg.SpeechConfig.DeepgramApiKey}, opts)
		}
	default:
		return func(ctx context.Context, opts *internal_transformer.SpeechToTextInitializeOptions) (internal_transformer.SpeechToTextTransformer, error) {
			return internal_transformer_google.NewGoogleSpeechToText(ctx, logger, googleCredential(cfg), opts)
		}
	}
}
