// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package utils

import (
	"fmt"
	"strconv"
)

// Option is a flat, dot-keyed bag of provider options
// (e.g. "listen.language", "speak.voice.id").
type Option map[string]interface{}

// GetString returns the string value for key, or an error when the key is
// absent or holds a non-string value.
func (o Option) GetString(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", fmt.Errorf("option %q not set", key)
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("option %q is not a string", key)
	}
}

// GetInt returns the integer value for key, accepting numeric strings.
func (o Option) GetInt(key string) (int, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("option %q not set", key)
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("option %q is not an integer: %w", key, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("option %q is not an integer", key)
	}
}

// GetBool returns the boolean value for key, defaulting to fallback when
// the key is absent or malformed.
func (o Option) GetBool(key string, fallback bool) bool {
	v, ok := o[key]
	if !ok {
		return fallback
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}
