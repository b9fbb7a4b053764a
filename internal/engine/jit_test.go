//go:build !nojit

package engine

import (
	"errors"
	"testing"
)

func TestCompileJIT(t *testing.T) {
	h, err := CompileJIT(`(\d+)`, Options{})
	if err != nil {
		t.Fatalf("CompileJIT: %v", err)
	}

	ms, err := h.FindAll("a12b34", -1)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if ms[0][0] != 1 || ms[0][1] != 3 {
		t.Errorf("first match span = (%d,%d), want (1,3)", ms[0][0], ms[0][1])
	}
}

func TestCompileJITUnsupportedConfig(t *testing.T) {
	for _, opts := range []Options{
		{IgnoreWhitespace: true},
		{Unicode: true},
	} {
		_, err := CompileJIT(`abc`, opts)
		if !errors.Is(err, ErrUnsupportedConfig) {
			t.Errorf("CompileJIT(%+v) error = %v, want ErrUnsupportedConfig", opts, err)
		}
	}
}

// Look-arounds are outside RE2 syntax, so the JIT tier refuses them and
// the tiered compiler can fall through to backtracking.
func TestCompileJITRejectsLookaround(t *testing.T) {
	if _, err := CompileJIT(`(?<=USD)\d+`, Options{}); err == nil {
		t.Error("expected a compile error for lookbehind")
	}
}
