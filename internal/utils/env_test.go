package utils

import (
	"testing"
	"time"
)

func TestSafeEnv(t *testing.T) {
	const key = "_QUIZLINE_TEST_SAFEENV"
	t.Setenv(key, "")
	if got := SafeEnv(key, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv(key, "  value ")
	if got := SafeEnv(key, "fallback"); got != "value" {
		t.Fatalf("expected 'value', got %q", got)
	}
}

func TestEnvDuration(t *testing.T) {
	const key = "_QUIZLINE_TEST_DURATION"
	t.Setenv(key, "")
	if d, err := EnvDuration(key, 10*time.Second); err != nil || d != 10*time.Second {
		t.Fatalf("expected fallback, got %v %v", d, err)
	}
	t.Setenv(key, "1500ms")
	if d, err := EnvDuration(key, time.Second); err != nil || d != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %v %v", d, err)
	}
	t.Setenv(key, "soon")
	if _, err := EnvDuration(key, time.Second); err == nil {
		t.Fatalf("expected parse error")
	}
	t.Setenv(key, "-1s")
	if _, err := EnvDuration(key, time.Second); err == nil {
		t.Fatalf("expected error for negative duration")
	}
}
