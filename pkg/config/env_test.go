package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")

	if got := GetEnvString("TEST_STRING", "default"); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
	if got := GetEnvString("TEST_STRING_UNSET", "default"); got != "default" {
		t.Errorf("expected 'default', got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid integer", "42", 42},
		{"negative integer", "-5", -5},
		{"invalid value falls back", "not-a-number", 7},
		{"empty falls back", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_INT", tt.value)
			}
			if got := GetEnvInt("TEST_INT", 7); got != tt.want {
				t.Errorf("GetEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"garbage", true}, // falls back to default
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := GetEnvBool("TEST_BOOL", true); got != tt.want {
				t.Errorf("GetEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	if got := GetEnvDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("expected 90s, got %v", got)
	}

	t.Setenv("TEST_DURATION", "bogus")
	if got := GetEnvDuration("TEST_DURATION", 3*time.Second); got != 3*time.Second {
		t.Errorf("expected fallback 3s, got %v", got)
	}
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_LIST", "a, b , ,c")
	got := GetEnvStringList("TEST_LIST", []string{"x"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	t.Setenv("TEST_LIST", " , ,")
	got = GetEnvStringList("TEST_LIST", []string{"x"})
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("expected fallback [x], got %v", got)
	}
}

func TestValidateDurations(t *testing.T) {
	if err := ValidatePositiveDuration(time.Second); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := ValidatePositiveDuration(0); err == nil {
		t.Error("expected error for zero duration")
	}
	if err := ValidateNonNegativeDuration(0); err != nil {
		t.Errorf("expected nil for zero, got %v", err)
	}
	if err := ValidateNonNegativeDuration(-time.Second); err == nil {
		t.Error("expected error for negative duration")
	}
	if err := ValidateDurationRange(5*time.Second, time.Second, time.Minute); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := ValidateDurationRange(2*time.Hour, time.Second, time.Minute); err == nil {
		t.Error("expected error for out-of-range duration")
	}
}
