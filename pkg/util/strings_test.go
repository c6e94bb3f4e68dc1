package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("12", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := ParseIntDefault("nope", 7); got != 7 {
		t.Fatalf("expected default on invalid, got %d", got)
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(0, 1, 30); got != 1 {
		t.Fatalf("expected lower bound, got %d", got)
	}
	if got := ClampInt(99, 1, 30); got != 30 {
		t.Fatalf("expected upper bound, got %d", got)
	}
	if got := ClampInt(8, 1, 30); got != 8 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}
