// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_google

import (
	"context"
	"fmt"
	"io"
	"sync"

	speech "cloud.google.com/go/speech/apiv2"
	"cloud.google.com/go/speech/apiv2/speechpb"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
)

type googleSpeechToText struct {
	*googleOption
	mu                 sync.Mutex
	logger             commons.Logger
	ctx                context.Context
	client             *speech.Client
	stream             speechpb.Speech_StreamingRecognizeClient
	transformerOptions *internal_transformer.SpeechToTextInitializeOptions
}

// Name implements internal_transformer.SpeechToTextTransformer.
func (*googleSpeechToText) Name() string {
	return "google-speech-to-text"
}

func NewGoogleSpeechToText(ctx context.Context,
	logger commons.Logger,
	credential *internal_transformer.Credential,
	transformerOptions *internal_transformer.SpeechToTextInitializeOptions,
) (internal_transformer.SpeechToTextTransformer, error) {
	googleOpts, err := NewGoogleOption(logger, credential, transformerOptions.ModelOptions)
	if err != nil {
		logger.Errorf("google-stt: intializing google failed %+v", err)
		return nil, err
	}

	return &googleSpeechToText{
		ctx:                ctx,
		logger:             logger,
		googleOption:       googleOpts,
		transformerOptions: transformerOptions,
	}, nil
}

// speechToTextCallback processes streaming recognition responses asynchronously.
func (gst *googleSpeechToText) speechToTextCallback(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			gst.logger.Infof("google-stt: context cancelled, stopping response listener")
			return
		default:
			resp, err := gst.stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				gst.logger.Errorf("google-stt: error reading from recognition stream: %v", err)
				return
			}
			for _, result := range resp.GetResults() {
				if len(result.GetAlternatives()) == 0 {
					continue
				}
				alt := result.GetAlternatives()[0]
				if alt.GetTranscript() == "" {
					continue
				}
				if gst.transformerOptions.OnTranscript != nil {
					gst.transformerOptions.OnTranscript(
						alt.GetTranscript(),
						alt.GetConfidence(),
						result.GetLanguageCode(),
						result.GetIsFinal(),
					)
				}
			}
		}
	}
}

func (gst *googleSpeechToText) Initialize() error {
	gst.mu.Lock()
	defer gst.mu.Unlock()

	client, err := speech.NewClient(gst.ctx, gst.GetSpeechToTextClientOptions()...)
	if err != nil {
		return fmt.Errorf("google-stt: failed to create speech client: %w", err)
	}
	gst.client = client

	stream, err := client.StreamingRecognize(gst.ctx)
	if err != nil {
		return fmt.Errorf("google-stt: failed to open recognition stream: %w", err)
	}
	gst.stream = stream

	// First request carries the recognizer and streaming config; audio follows.
	if err := stream.Send(&speechpb.StreamingRecognizeRequest{
		Recognizer: gst.GetRecognizer(),
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: gst.SpeechToTextOptions(),
		},
	}); err != nil {
		return fmt.Errorf("google-stt: failed to send streaming config: %w", err)
	}

	go gst.speechToTextCallback(gst.ctx)
	return nil
}

func (gst *googleSpeechToText) Transform(ctx context.Context, in []byte, opts *internal_transformer.SpeechToTextOption) error {
	gst.mu.Lock()
	defer gst.mu.Unlock()

	if gst.stream == nil {
		return fmt.Errorf("google-stt: recognition stream is not initialized")
	}
	if err := gst.stream.Send(&speechpb.StreamingRecognizeRequest{
		Recognizer: gst.GetRecognizer(),
		StreamingRequest: &speechpb.StreamingRecognizeRequest_Audio{
			Audio: in,
		},
	}); err != nil {
		return fmt.Errorf("failed to send audio data: %w", err)
	}
	return nil
}

func (gst *googleSpeechToText) Close(ctx context.Context) error {
	gst.mu.Lock()
	defer gst.mu.Unlock()

	if gst.stream != nil {
		if err := gst.stream.CloseSend(); err != nil {
			gst.logger.Errorf("google-stt: error closing recognition stream: %v", err)
		}
		gst.stream = nil
	}
	if gst.client != nil {
		if err := gst.client.Close(); err != nil {
			return fmt.Errorf("error closing speech client: %w", err)
		}
		gst.client = nil
		gst.logger.Info("google-stt: speech client closed")
	}
	return nil
}
