package engine

import (
	"github.com/coregx/coregex"
)

// dfaStateSize approximates the memory footprint of one cached lazy-DFA
// state, used to translate the byte-denominated DFA budget into coregex's
// state-count budget. The 10 MB default budget lands on coregex's own
// default of 10000 states.
const dfaStateSize = 1024

// maxDFAStates is the largest state count coregex's config validation
// accepts. Budgets above it clamp here instead of failing compilation.
const maxDFAStates = 1_000_000

// linearHandle adapts coregex, the linear-time automaton engine.
type linearHandle struct {
	re *coregex.Regex
}

// CompileLinear compiles pattern with the linear-time automaton engine.
// The engine guarantees O(m*n) matching but cannot express free-spacing
// patterns or Unicode-aware character classes, so those options refuse to
// compile instead of silently changing semantics.
func CompileLinear(pattern string, opts Options) (Handle, error) {
	if opts.IgnoreWhitespace || opts.Unicode {
		return nil, ErrUnsupportedConfig
	}
	if err := checkSizeLimit(inlineFlags(opts)+pattern, opts.SizeLimit); err != nil {
		return nil, err
	}

	cfg := coregex.DefaultConfig()
	if opts.DFASizeLimit > 0 {
		states := opts.DFASizeLimit / dfaStateSize
		if states < 1 {
			states = 1
		}
		if states > maxDFAStates {
			states = maxDFAStates
		}
		cfg.MaxDFAStates = uint32(states)
	}

	re, err := coregex.CompileWithConfig(inlineFlags(opts)+pattern, cfg)
	if err != nil {
		return nil, err
	}
	return &linearHandle{re: re}, nil
}

func (h *linearHandle) FindAll(text string, n int) ([][]int, error) {
	return h.re.FindAllStringSubmatchIndex(text, n), nil
}

func (h *linearHandle) GroupNames() []string {
	return h.re.SubexpNames()
}
