// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"regexp"

	"github.com/rapidaai/interview-api/pkg/commons"
)

type abbreviationRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// abbreviationNormalizer applies an ordered list of rewrite rules. Order
// matters: multi-token patterns (i.e., CI/CD) must run before their
// single-token components.
type abbreviationNormalizer struct {
	logger commons.Logger
	name   string
	rules  []abbreviationRule
}

func (n *abbreviationNormalizer) Name() string {
	return n.name
}

func (n *abbreviationNormalizer) Normalize(text string) string {
	if text == "" {
		return text
	}
	for _, rule := range n.rules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}

func compileRules(pairs [][2]string) []abbreviationRule {
	rules := make([]abbreviationRule, 0, len(pairs))
	for _, pair := range pairs {
		rules = append(rules, abbreviationRule{
			pattern:     regexp.MustCompile(pair[0]),
			replacement: pair[1],
		})
	}
	return rules
}

// NewGeneralAbbreviationNormalizer expands titles and everyday latin
// abbreviations that appear in question prompts.
func NewGeneralAbbreviationNormalizer(logger commons.Logger) Normalizer {
	return &abbreviationNormalizer{
		logger: logger,
		name:   "general-abbreviation",
		rules: compileRules([][2]string{
			{`(?i)\bi\.e\.`, "that is"},
			{`(?i)\be\.g\.`, "for example"},
			{`(?i)\ba\.m\.`, "ay em"},
			{`(?i)\bp\.m\.`, "pee em"},
			{`(?i)\bdr\.`, "doctor"},
			{`(?i)\bmrs\.`, "missus"},
			{`(?i)\bmr\.`, "mister"},
			{`(?i)\bms\.`, "miz"},
			{`(?i)\bjr\.`, "junior"},
			{`(?i)\bsr\.`, "senior"},
			{`(?i)\betc\.`, "etcetera"},
			{`(?i)\bvs\.`, "versus"},
			{`(?i)\bdept\.`, "department"},
			{`(?i)\bave\.`, "avenue"},
			{`(?i)\bapt\.`, "apartment"},
			{`(?i)\baka\b`, "ay kay ay"},
			{`(?i)\basap\b`, "ay sap"},
		}),
	}
}

// NewTechAbbreviationNormalizer spells out technology acronyms phonetically
// so the narrator reads "ay pee eye" rather than attempting "API" as a word.
func NewTechAbbreviationNormalizer(logger commons.Logger) Normalizer {
	return &abbreviationNormalizer{
		logger: logger,
		name:   "tech-abbreviation",
		rules: compileRules([][2]string{
			{`(?i)\bCI/CD\b`, "see eye see dee"},
			{`(?i)\bTCP/IP\b`, "tee see pee eye pee"},
			{`(?i)\bNoSQL\b`, "no ess queue el"},
			{`(?i)\bSQL\b`, "ess queue el"},
			{`(?i)\bHTML\b`, "aitch tee em el"},
			{`(?i)\bCSS\b`, "see es es"},
			{`(?i)\bAPI\b`, "ay pee eye"},
			{`(?i)\bAI\b`, "eh eye"},
			{`(?i)\bML\b`, "em el"},
			{`(?i)\bCPU\b`, "see pee you"},
			{`(?i)\bGPU\b`, "gee pee you"},
			{`(?i)\bVPN\b`, "vee pee en"},
			{`(?i)\bURL\b`, "you are el"},
			{`(?i)\bSaaS\b`, "sass"},
			{`(?i)\bPaaS\b`, "pass"},
			{`(?i)\bDevOps\b`, "dev ops"},
			{`(?i)\bJSON\b`, "jay sahn"},
			{`(?i)\bHTTP\b`, "aitch tee tee pee"},
		}),
	}
}
