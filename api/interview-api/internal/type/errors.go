// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

import "errors"

var (
	// ErrSourceUnavailable: the question fetch failed or produced no
	// questions. The session cannot start; this is the only hard stop.
	ErrSourceUnavailable = errors.New("question source unavailable")

	// ErrMediaAccessDenied: camera/microphone acquisition was declined or no
	// device exists. The session continues without a recording.
	ErrMediaAccessDenied = errors.New("media access denied")

	// ErrVoiceUnsupported: no speech recognizer is available. The session
	// falls back to typed answers.
	ErrVoiceUnsupported = errors.New("speech recognition unsupported")

	// ErrValidationFailed: the scoring call failed. The session still reaches
	// its terminal state; the evaluation is simply absent.
	ErrValidationFailed = errors.New("response validation failed")
)
