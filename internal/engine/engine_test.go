package engine

import (
	"errors"
	"testing"
)

func TestInlineFlags(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{Options{}, ""},
		{Options{CaseInsensitive: true}, "(?i)"},
		{Options{Multiline: true}, "(?m)"},
		{Options{CaseInsensitive: true, Multiline: true}, "(?im)"},
	}
	for _, tt := range tests {
		if got := inlineFlags(tt.opts); got != tt.want {
			t.Errorf("inlineFlags(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestCheckSizeLimit(t *testing.T) {
	if err := checkSizeLimit(`\d+`, 0); err != nil {
		t.Errorf("zero limit must be unlimited, got %v", err)
	}
	if err := checkSizeLimit(`\d+`, 1<<20); err != nil {
		t.Errorf("generous limit refused a tiny pattern: %v", err)
	}

	err := checkSizeLimit(`\d+\w+\s+`, 8)
	var rerr *ResourceLimitError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ResourceLimitError, got %v", err)
	}

	// Unparseable patterns are left for the engine's own compiler.
	if err := checkSizeLimit(`(unclosed`, 8); err != nil {
		t.Errorf("parse failure must not be a size failure, got %v", err)
	}
}
