// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"regexp"
	"strconv"

	"github.com/rapidaai/interview-api/pkg/commons"
	ntw "moul.io/number-to-words"
)

// numberToWordNormalizer spells out small standalone numbers so a spoken
// question says "question three of five" instead of reading digits.
// Only one and two digit numbers are rewritten; longer runs of digits
// (years, identifiers, phone numbers) are left for the TTS engine.
type numberToWordNormalizer struct {
	logger  commons.Logger
	pattern *regexp.Regexp
}

func NewNumberToWordNormalizer(logger commons.Logger) Normalizer {
	return &numberToWordNormalizer{
		logger:  logger,
		pattern: regexp.MustCompile(`\b\d{1,2}\b`),
	}
}

func (n *numberToWordNormalizer) Name() string {
	return "number-to-word"
}

func (n *numberToWordNormalizer) Normalize(text string) string {
	return n.pattern.ReplaceAllStringFunc(text, func(match string) string {
		value, err := strconv.Atoi(match)
		if err != nil {
			return match
		}
		if value == 0 {
			return "zero"
		}
		return ntw.IntegerToEnUs(value)
	})
}
