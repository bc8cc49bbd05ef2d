package utils

import "testing"

func TestOptionGetString(t *testing.T) {
	opts := Option{
		"listen.language": "en-US",
		"listen.channels": 1,
	}

	if v, err := opts.GetString("listen.language"); err != nil || v != "en-US" {
		t.Errorf("expected en-US, got %q (err=%v)", v, err)
	}
	if _, err := opts.GetString("listen.missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := opts.GetString("listen.channels"); err == nil {
		t.Error("expected error for non-string value")
	}
}

func TestOptionGetInt(t *testing.T) {
	opts := Option{
		"speak.rate":    16000,
		"speak.volume":  "11",
		"speak.invalid": "loud",
	}

	if v, err := opts.GetInt("speak.rate"); err != nil || v != 16000 {
		t.Errorf("expected 16000, got %d (err=%v)", v, err)
	}
	if v, err := opts.GetInt("speak.volume"); err != nil || v != 11 {
		t.Errorf("expected 11, got %d (err=%v)", v, err)
	}
	if _, err := opts.GetInt("speak.invalid"); err == nil {
		t.Error("expected error for non-numeric string")
	}
	if _, err := opts.GetInt("speak.missing"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestOptionGetBool(t *testing.T) {
	opts := Option{
		"listen.interim": true,
		"listen.vad":     "false",
		"listen.bad":     "not-a-bool",
	}

	if !opts.GetBool("listen.interim", false) {
		t.Error("expected true")
	}
	if opts.GetBool("listen.vad", true) {
		t.Error("expected false")
	}
	if !opts.GetBool("listen.bad", true) {
		t.Error("expected fallback true for malformed value")
	}
	if opts.GetBool("listen.missing", false) {
		t.Error("expected fallback false for missing key")
	}
}
