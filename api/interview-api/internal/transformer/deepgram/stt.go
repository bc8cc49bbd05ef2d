// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
)

// speechToTextOutput is the live transcription response shape.
type speechToTextOutput struct {
	IsFinal bool `json:"is_final"`
	Channel struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float32 `json:"confidence"`
			Languages  []string `json:"languages"`
		} `json:"alternatives"`
	} `json:"channel"`
}

type deepgramSpeechToText struct {
	*deepgramOption
	mu                 sync.Mutex
	logger             commons.Logger
	ctx                context.Context
	connection         *websocket.Conn
	transformerOptions *internal_transformer.SpeechToTextInitializeOptions
}

// Name implements internal_transformer.SpeechToTextTransformer.
func (*deepgramSpeechToText) Name() string {
	return "deepgram-speech-to-text"
}

func NewDeepgramSpeechToText(ctx context.Context,
	logger commons.Logger,
	credential *internal_transformer.Credential,
	transformerOptions *internal_transformer.SpeechToTextInitializeOptions,
) (internal_transformer.SpeechToTextTransformer, error) {
	deepgramOpts, err := NewDeepgramOption(logger, credential, transformerOptions.ModelOptions)
	if err != nil {
		logger.Errorf("deepgram-stt: intializing deepgram failed %+v", err)
		return nil, err
	}

	return &deepgramSpeechToText{
		ctx:                ctx,
		logger:             logger,
		deepgramOption:     deepgramOpts,
		transformerOptions: transformerOptions,
	}, nil
}

// speechToTextCallback processes streaming responses asynchronously.
func (dst *deepgramSpeechToText) speechToTextCallback(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			dst.logger.Infof("deepgram-stt: context cancelled, stopping response listener")
			return
		default:
			_, msg, err := dst.connection.ReadMessage()
			if err != nil {
				dst.logger.Errorf("deepgram-stt: error reading from Deepgram WebSocket: %v", err)
				return
			}
			var resp speechToTextOutput
			if err := json.Unmarshal(msg, &resp); err != nil || len(resp.Channel.Alternatives) == 0 {
				continue
			}
			alt := resp.Channel.Alternatives[0]
			if alt.Transcript == "" {
				continue
			}
			language := ""
			if len(alt.Languages) > 0 {
				language = alt.Languages[0]
			}
			if dst.transformerOptions.OnTranscript != nil {
				dst.transformerOptions.OnTranscript(
					alt.Transcript,
					alt.Confidence,
					language,
					resp.IsFinal,
				)
			}
		}
	}
}

func (dst *deepgramSpeechToText) Initialize() error {
	dst.mu.Lock()
	defer dst.mu.Unlock()

	headers := http.Header{
		"Authorization": {"Token " + dst.GetKey()},
	}
	conn, _, err := websocket.DefaultDialer.Dial(dst.GetSpeechToTextConnectionString(), headers)
	if err != nil {
		return fmt.Errorf("deepgram-stt: failed to connect to Deepgram WebSocket: %w", err)
	}
	dst.connection = conn
	go dst.speechToTextCallback(dst.ctx)
	return nil
}

func (dst *deepgramSpeechToText) Transform(ctx context.Context, in []byte, opts *internal_transformer.SpeechToTextOption) error {
	dst.mu.Lock()
	defer dst.mu.Unlock()

	if dst.connection == nil {
		return fmt.Errorf("deepgram-stt: websocket connection is not initialized")
	}
	if err := dst.connection.WriteMessage(websocket.BinaryMessage, in); err != nil {
		return fmt.Errorf("failed to send audio data: %w", err)
	}
	return nil
}

func (dst *deepgramSpeechToText) Close(ctx context.Context) error {
	dst.mu.Lock()
	defer dst.mu.Unlock()

	if dst.connection != nil {
		if err := dst.connection.Close(); err != nil {
			return fmt.Errorf("error closing WebSocket connection: %w", err)
		}
		dst.connection = nil
		dst.logger.Info("deepgram-stt: deepgram websocket connection closed")
	}
	return nil
}
