// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"regexp"
	"strings"

	"github.com/rapidaai/interview-api/pkg/commons"
)

// symbolNormalizer expands symbols that TTS engines either skip or
// mispronounce inside interview prompts ("rate 1-10", "50% of the time").
type symbolNormalizer struct {
	logger     commons.Logger
	replacer   *strings.Replacer
	whitespace *regexp.Regexp
}

func NewSymbolNormalizer(logger commons.Logger) Normalizer {
	return &symbolNormalizer{
		logger: logger,
		replacer: strings.NewReplacer(
			"%", " percent",
			"&", " and ",
			"+", " plus ",
			"@", " at ",
			"#", " number ",
			"=", " equals ",
		),
		whitespace: regexp.MustCompile(`\s+`),
	}
}

func (n *symbolNormalizer) Name() string {
	return "symbol"
}

func (n *symbolNormalizer) Normalize(text string) string {
	if text == "" {
		return text
	}
	out := n.replacer.Replace(text)
	out = n.whitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
