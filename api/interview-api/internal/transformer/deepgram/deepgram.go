// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_deepgram

import (
	"fmt"
	"net/url"
	"strconv"

	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	internal_transformer "github.com/rapidaai/interview-api/api/interview-api/internal/transformer"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/utils"
)

const (
	DefaultLanguage    = "en-US"
	DefaultModel       = "nova"
	DefaultEndpointing = "5"
	listenBaseUrl      = "wss://api.deepgram.com/v1/listen"
)

type deepgramOption struct {
	logger  commons.Logger
	mdlOpts utils.Option
	key     string
}

// NewDeepgramOption validates the credential and captures model options.
func NewDeepgramOption(logger commons.Logger, credential *internal_transformer.Credential, opts utils.Option) (*deepgramOption, error) {
	if credential == nil || credential.Key == "" {
		return nil, fmt.Errorf("illegal vault config, deepgram api key is required")
	}
	return &deepgramOption{
		logger:  logger,
		mdlOpts: opts,
		key:     credential.Key,
	}, nil
}

func (dg *deepgramOption) GetKey() string {
	return dg.key
}

// GetEncoding returns the wire encoding; the engine is LINEAR16 end to end.
func (dg *deepgramOption) GetEncoding() string {
	return "linear16"
}

// SpeechToTextOptions generates the live transcription configuration.
// Encoding and sample rate stay hardcoded to the engine capture format.
func (dg *deepgramOption) SpeechToTextOptions() *interfaces.LiveTranscriptionOptions {
	opts := &interfaces.LiveTranscriptionOptions{
		Model:          DefaultModel,
		Language:       DefaultLanguage,
		Channels:       int(internal_transformer.DefaultAudioConfig.Channels),
		SmartFormat:    true,
		InterimResults: true,
		FillerWords:    true,
		VadEvents:      false,
		Endpointing:    DefaultEndpointing,
		Punctuate:      true,
		NoDelay:        true,
		Encoding:       dg.GetEncoding(),
		SampleRate:     int(internal_transformer.DefaultAudioConfig.SampleRate),
	}

	if language, err := dg.mdlOpts.GetString("listen.language"); err == nil {
		opts.Language = language
	}
	if model, err := dg.mdlOpts.GetString("listen.model"); err == nil {
		opts.Model = model
	}
	opts.SmartFormat = dg.mdlOpts.GetBool("listen.smart_format", opts.SmartFormat)
	opts.FillerWords = dg.mdlOpts.GetBool("listen.filler_words", opts.FillerWords)
	opts.VadEvents = dg.mdlOpts.GetBool("listen.vad_events", opts.VadEvents)
	if endpointing, err := dg.mdlOpts.GetString("listen.endpointing"); err == nil {
		opts.Endpointing = endpointing
	}

	return opts
}

// GetSpeechToTextConnectionString builds the live transcription websocket URL.
func (dg *deepgramOption) GetSpeechToTextConnectionString() string {
	opts := dg.SpeechToTextOptions()

	params := url.Values{}
	params.Set("model", opts.Model)
	params.Set("language", opts.Language)
	params.Set("channels", strconv.Itoa(opts.Channels))
	params.Set("encoding", opts.Encoding)
	params.Set("sample_rate", strconv.Itoa(opts.SampleRate))
	params.Set("smart_format", strconv.FormatBool(opts.SmartFormat))
	params.Set("interim_results", strconv.FormatBool(opts.InterimResults))
	params.Set("filler_words", strconv.FormatBool(opts.FillerWords))
	params.Set("vad_events", strconv.FormatBool(opts.VadEvents))
	params.Set("endpointing", opts.Endpointing)
	params.Set("punctuate", strconv.FormatBool(opts.Punctuate))
	params.Set("no_delay", strconv.FormatBool(opts.NoDelay))

	return fmt.Sprintf("%s?%s", listenBaseUrl, params.Encode())
}
