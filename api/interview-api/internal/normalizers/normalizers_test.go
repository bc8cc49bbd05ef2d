// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_normalizers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// Mock Logger Implementation
// =============================================================================

type mockLogger struct {
	warnMessages []string
}

func newMockLogger() *mockLogger {
	return &mockLogger{
		warnMessages: make([]string, 0),
	}
}

func (m *mockLogger) Level() zapcore.Level                         { return zapcore.DebugLevel }
func (m *mockLogger) Debug(args ...interface{})                    {}
func (m *mockLogger) Debugf(template string, args ...interface{})  {}
func (m *mockLogger) Info(args ...interface{})                     {}
func (m *mockLogger) Infof(template string, args ...interface{})   {}
func (m *mockLogger) Warn(args ...interface{})                     {}
func (m *mockLogger) Warnf(template string, args ...interface{}) {
	m.warnMessages = append(m.warnMessages, template)
}
func (m *mockLogger) Error(args ...interface{})                    {}
func (m *mockLogger) Errorf(template string, args ...interface{})  {}
func (m *mockLogger) DPanic(args ...interface{})                   {}
func (m *mockLogger) DPanicf(template string, args ...interface{}) {}
func (m *mockLogger) Panic(args ...interface{})                    {}
func (m *mockLogger) Panicf(template string, args ...interface{})  {}
func (m *mockLogger) Fatal(args ...interface{})                    {}
func (m *mockLogger) Fatalf(template string, args ...interface{})  {}
func (m *mockLogger) Benchmark(functionName string, duration time.Duration) {
}
func (m *mockLogger) Tracef(ctx context.Context, format string, args ...interface{}) {
}
func (m *mockLogger) Sync() error { return nil }

// =============================================================================
// Number To Word Normalizer Tests
// =============================================================================

func TestNumberToWordNormalizer(t *testing.T) {
	logger := newMockLogger()
	normalizer := NewNumberToWordNormalizer(logger)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single digit",
			input:    "You have 5 seconds remaining",
			expected: "You have five seconds remaining",
		},
		{
			name:     "teens",
			input:    "There are 15 questions",
			expected: "There are fifteen questions",
		},
		{
			name:     "compound number",
			input:    "Answer within 42 seconds",
			expected: "Answer within forty-two seconds",
		},
		{
			name:     "zero",
			input:    "Score is 0",
			expected: "Score is zero",
		},
		{
			name:     "multiple numbers",
			input:    "Question 5 of 12 worth 3 points",
			expected: "Question five of twelve worth three points",
		},
		{
			name:     "number at boundary 99",
			input:    "Rated 99 times",
			expected: "Rated ninety-nine times",
		},
		{
			name:     "number over 99 unchanged",
			input:    "Population is 100",
			expected: "Population is 100",
		},
		{
			name:     "no numbers",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "ten",
			input:    "Rate it from 1 to 10",
			expected: "Rate it from one to ten",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// =============================================================================
// Symbol Normalizer Tests
// =============================================================================

func TestSymbolNormalizer(t *testing.T) {
	logger := newMockLogger()
	normalizer := NewSymbolNormalizer(logger)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "percent",
			input:    "50% of requests",
			expected: "50 percent of requests",
		},
		{
			name:     "ampersand",
			input:    "AT&T network",
			expected: "AT and T network",
		},
		{
			name:     "plus",
			input:    "C++ experience",
			expected: "C plus plus experience",
		},
		{
			name:     "at sign",
			input:    "reach me @ the office",
			expected: "reach me at the office",
		},
		{
			name:     "no symbols",
			input:    "Plain sentence",
			expected: "Plain sentence",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// =============================================================================
// Tech Abbreviation Normalizer Tests
// =============================================================================

func TestTechAbbreviationNormalizer(t *testing.T) {
	logger := newMockLogger()
	normalizer := NewTechAbbreviationNormalizer(logger)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "AI abbreviation",
			input:    "We use AI for screening",
			expected: "We use eh eye for screening",
		},
		{
			name:     "API abbreviation",
			input:    "Describe the API you built",
			expected: "Describe the ay pee eye you built",
		},
		{
			name:     "multiple tech terms",
			input:    "Using ML and AI with API",
			expected: "Using em el and eh eye with ay pee eye",
		},
		{
			name:     "case insensitive",
			input:    "HTML and CSS",
			expected: "aitch tee em el and see es es",
		},
		{
			name:     "database terms",
			input:    "Using SQL and NoSQL",
			expected: "Using ess queue el and no ess queue el",
		},
		{
			name:     "networking terms",
			input:    "VPN over TCP/IP",
			expected: "vee pee en over tee see pee eye pee",
		},
		{
			name:     "no abbreviations",
			input:    "Plain text only",
			expected: "Plain text only",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "hardware terms",
			input:    "Upgrade CPU and GPU",
			expected: "Upgrade see pee you and gee pee you",
		},
		{
			name:     "DevOps and CI/CD",
			input:    "DevOps with CI/CD pipeline",
			expected: "dev ops with see eye see dee pipeline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// =============================================================================
// General Abbreviation Normalizer Tests
// =============================================================================

func TestGeneralAbbreviationNormalizer(t *testing.T) {
	logger := newMockLogger()
	normalizer := NewGeneralAbbreviationNormalizer(logger)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Doctor title",
			input:    "Dr. Smith is here",
			expected: "doctor Smith is here",
		},
		{
			name:     "Mr and Mrs",
			input:    "Mr. and Mrs. Jones",
			expected: "mister and missus Jones",
		},
		{
			name:     "etc",
			input:    "apples, oranges, etc.",
			expected: "apples, oranges, etcetera",
		},
		{
			name:     "ie and eg",
			input:    "fruits i.e. apples e.g. red ones",
			expected: "fruits that is apples for example red ones",
		},
		{
			name:     "time markers",
			input:    "Meeting at 9 a.m. ends at 5 p.m.",
			expected: "Meeting at 9 ay em ends at 5 pee em",
		},
		{
			name:     "versus",
			input:    "Team A vs. Team B",
			expected: "Team A versus Team B",
		},
		{
			name:     "junior senior",
			input:    "John Jr. and James Sr.",
			expected: "John junior and James senior",
		},
		{
			name:     "asap",
			input:    "Need this ASAP",
			expected: "Need this ay sap",
		},
		{
			name:     "no abbreviations",
			input:    "Normal sentence here",
			expected: "Normal sentence here",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "department",
			input:    "Contact dept. manager",
			expected: "Contact department manager",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// =============================================================================
// Pipeline Tests
// =============================================================================

func TestBuildPipeline(t *testing.T) {
	logger := newMockLogger()

	t.Run("resolves known names in order", func(t *testing.T) {
		pipeline := BuildPipeline(logger, []string{"tech", "number", "symbol"})
		assert.Len(t, pipeline, 3)
		assert.Equal(t, "tech-abbreviation", pipeline[0].Name())
		assert.Equal(t, "number-to-word", pipeline[1].Name())
		assert.Equal(t, "symbol", pipeline[2].Name())
	})

	t.Run("skips unknown names with warning", func(t *testing.T) {
		warned := newMockLogger()
		pipeline := BuildPipeline(warned, []string{"number", "nope"})
		assert.Len(t, pipeline, 1)
		assert.Len(t, warned.warnMessages, 1)
	})

	t.Run("chained normalization", func(t *testing.T) {
		pipeline := BuildPipeline(logger, []string{"tech", "number"})
		result := "Rate your SQL skills from 1 to 10"
		for _, n := range pipeline {
			result = n.Normalize(result)
		}
		assert.Equal(t, "Rate your ess queue el skills from one to ten", result)
	})
}
