// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"strings"

	"github.com/rapidaai/interview-api/pkg/commons"
)

// =============================================================================
// Normalizer Interface
// =============================================================================

// Normalizer rewrites a fragment of narration text into a form that
// text-to-speech engines pronounce naturally. Normalizers are pure string
// transforms and safe to chain.
type Normalizer interface {
	// Name identifies the normalizer in logs and pipeline configuration.
	Name() string

	// Normalize rewrites the input text.
	Normalize(text string) string
}

// BuildPipeline resolves a list of normalizer names into instances,
// skipping unknown names with a warning. The returned slice preserves the
// requested order; callers apply them front to back.
func BuildPipeline(logger commons.Logger, names []string) []Normalizer {
	normalizers := make([]Normalizer, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		var normalizer Normalizer

		switch name {
		case "number", "number-to-word":
			normalizer = NewNumberToWordNormalizer(logger)
		case "symbol":
			normalizer = NewSymbolNormalizer(logger)
		case "general-abbreviation", "general":
			normalizer = NewGeneralAbbreviationNormalizer(logger)
		case "tech-abbreviation", "tech":
			normalizer = NewTechAbbreviationNormalizer(logger)
		default:
			logger.Warnf("normalizer: unknown normalizer '%s', skipping", name)
			continue
		}
		normalizers = append(normalizers, normalizer)
	}
	return normalizers
}
