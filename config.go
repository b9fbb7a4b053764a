package rex

import "github.com/kolkov/rex/internal/engine"

// DefaultDFASizeLimit is the default budget, in bytes, for lazy-DFA
// construction on the linear tier.
const DefaultDFASizeLimit = 10_000_000

// Config holds compilation and matching options.
//
// A Config is immutable once passed to Compile: the compiled Pattern
// keeps its own normalized copy. Two Configs with equal fields are
// interchangeable for caching purposes, so Config must stay comparable
// (no pointers, slices or maps).
type Config struct {
	// CaseInsensitive makes matching ignore letter case.
	CaseInsensitive bool

	// IgnoreWhitespace enables free-spacing mode: whitespace in the
	// pattern is ignored and # starts a comment. Only the backtracking
	// tier can express this, so setting it routes the pattern there.
	IgnoreWhitespace bool

	// Multiline makes ^ and $ match at line boundaries.
	Multiline bool

	// UnicodeMode requests Unicode-aware character classes (\w matching
	// letters beyond ASCII). The automaton tiers use ASCII classes, so
	// setting it routes the pattern to the backtracking tier.
	UnicodeMode bool

	// SizeLimit bounds the compiled program size in bytes on the
	// automaton tiers. Zero means unlimited. Overflow is a compile-time
	// failure that triggers fallback to the next tier.
	SizeLimit int64

	// DFASizeLimit bounds lazy-DFA construction cost in bytes on the
	// linear tier (default: DefaultDFASizeLimit).
	DFASizeLimit int64

	// BacktrackLimit bounds backtracking search steps on the fallback
	// tier. Zero means unlimited. Exceeding it fails the match attempt
	// with a BacktrackLimitError instead of hanging.
	BacktrackLimit int
}

// withDefaults returns a copy of c with unset fields normalized, so that
// an explicit default and a zero value share one cache entry.
func (c Config) withDefaults() Config {
	if c.DFASizeLimit == 0 {
		c.DFASizeLimit = DefaultDFASizeLimit
	}
	return c
}

// engineOptions translates the public Config into engine-level options.
func (c Config) engineOptions() engine.Options {
	return engine.Options{
		CaseInsensitive:  c.CaseInsensitive,
		IgnoreWhitespace: c.IgnoreWhitespace,
		Multiline:        c.Multiline,
		Unicode:          c.UnicodeMode,
		SizeLimit:        c.SizeLimit,
		DFASizeLimit:     c.DFASizeLimit,
		BacktrackLimit:   c.BacktrackLimit,
	}
}
