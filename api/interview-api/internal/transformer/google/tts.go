// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_google

import (
	"context"
	"fmt"
	"sync"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
)

type googleTextToSpeech struct {
	*googleOption
	mu                 sync.Mutex
	logger             commons.Logger
	ctx                context.Context
	client             *texttospeech.Client
	transformerOptions *internal_transformer.TextToSpeechInitializeOptions
}

// Name implements internal_transformer.TextToSpeechTransformer.
func (*googleTextToSpeech) Name() string {
	return "google-text-to-speech"
}

func NewGoogleTextToSpeech(ctx context.Context,
	logger commons.Logger,
	credential *internal_transformer.Credential,
	transformerOptions *internal_transformer.TextToSpeechInitializeOptions,
) (internal_transformer.TextToSpeechTransformer, error) {
	googleOpts, err := NewGoogleOption(logger, credential, transformerOptions.ModelOptions)
	if err != nil {
		logger.Errorf("google-tts: intializing google failed %+v", err)
		return nil, err
	}

	return &googleTextToSpeech{
		ctx:                ctx,
		logger:             logger,
		googleOption:       googleOpts,
		transformerOptions: transformerOptions,
	}, nil
}

func (gtt *googleTextToSpeech) Initialize() error {
	gtt.mu.Lock()
	defer gtt.mu.Unlock()

	client, err := texttospeech.NewClient(gtt.ctx, gtt.GetClientOptions()...)
	if err != nil {
		return fmt.Errorf("google-tts: failed to create texttospeech client: %w", err)
	}
	gtt.client = client
	return nil
}

// Transform synthesizes one utterance and hands the audio to OnSpeech.
// Synthesis is a unary call; ordering across utterances is the caller's
// responsibility (the narrator serializes on a single worker).
func (gtt *googleTextToSpeech) Transform(ctx context.Context, in string, opts *internal_transformer.TextToSpeechOption) error {
	gtt.mu.Lock()
	client := gtt.client
	gtt.mu.Unlock()

	if client == nil {
		return fmt.Errorf("google-tts: texttospeech client is not initialized")
	}

	voice, audioConfig := gtt.TextToSpeechOptions()
	resp, err := client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: in},
		},
		Voice:       voice,
		AudioConfig: audioConfig,
	})
	if err != nil {
		return fmt.Errorf("google-tts: synthesis failed: %w", err)
	}

	if gtt.transformerOptions.OnSpeech != nil {
		gtt.transformerOptions.OnSpeech(opts.ContextId, resp.GetAudioContent())
	}
	return nil
}

func (gtt *googleTextToSpeech) Close(ctx context.Context) error {
	gtt.mu.Lock()
	defer gtt.mu.Unlock()

	if gtt.client != nil {
		if err := gtt.client.Close(); err != nil {
			return fmt.Errorf("error closing texttospeech client: %w", err)
		}
		gtt.client = nil
		gtt.logger.Info("google-tts: texttospeech client closed")
	}
	return nil
}
