// Package engine binds the three external matching engines behind one
// capability interface.
//
// The engines themselves (coregex, go-re2, regexp2) own all matching
// algorithms; this package only adapts their compile entry points and
// result shapes. Every adapter reports match spans as byte offsets into
// the original text, with -1/-1 for capture groups that did not
// participate, so the facade above never needs to know which engine ran.
package engine

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"strings"
)

// Handle is the uniform capability interface over a compiled engine.
// Implementations are immutable and safe for concurrent use.
type Handle interface {
	// FindAll returns up to n leftmost non-overlapping matches, each as a
	// flat slice of start/end byte-offset pairs with the whole match
	// first. Groups that did not participate report -1, -1. n < 0 means
	// all matches. Scanning after each match resumes at its end offset,
	// or one position later when the match was empty, so the scan always
	// terminates.
	FindAll(text string, n int) ([][]int, error)

	// GroupNames returns the capture group names indexed by group number.
	// Entry 0 is always the empty string, as are unnamed groups.
	GroupNames() []string
}

// Options carries the compilation settings an engine may honor.
// An engine that cannot express a requested option must refuse to compile
// rather than compile with different semantics.
type Options struct {
	CaseInsensitive  bool
	IgnoreWhitespace bool
	Multiline        bool
	Unicode          bool

	SizeLimit      int64 // compiled program size bound in bytes, 0 = unlimited
	DFASizeLimit   int64 // DFA construction budget in bytes
	BacktrackLimit int   // backtracking step budget, 0 = unlimited
}

// ErrUnavailable reports an engine that was excluded from this build.
var ErrUnavailable = errors.New("engine not available in this build")

// ErrUnsupportedConfig reports a configuration option the engine cannot
// express. It triggers fallback to the next tier, exactly like an
// unsupported pattern construct.
var ErrUnsupportedConfig = errors.New("configuration not supported by engine")

// ResourceLimitError reports a compile-time size limit overflow.
type ResourceLimitError struct {
	Limit string // "size" or "dfa-size"
	Max   int64  // configured bound in bytes
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("compiled pattern exceeds %s limit of %d bytes", e.Limit, e.Max)
}

// BacktrackLimitError reports that a match attempt exhausted the
// configured backtracking budget.
type BacktrackLimitError struct {
	Limit int
}

func (e *BacktrackLimitError) Error() string {
	return fmt.Sprintf("backtrack limit of %d steps exceeded", e.Limit)
}

// inlineFlags renders the subset of opts expressible as an RE2-syntax
// inline flag group, for engines that take no option arguments.
func inlineFlags(opts Options) string {
	var flags strings.Builder
	if opts.CaseInsensitive {
		flags.WriteByte('i')
	}
	if opts.Multiline {
		flags.WriteByte('m')
	}
	if flags.Len() == 0 {
		return ""
	}
	return "(?" + flags.String() + ")"
}

// progInstSize approximates the in-memory footprint of one compiled
// program instruction, matching the granularity the size limit is
// specified in (bytes, not instructions).
const progInstSize = 40

// checkSizeLimit parses pattern with the RE2-compatible syntax compiler
// and verifies the compiled program fits within limit bytes. Parse or
// compile failures are ignored here; the engine's own compiler reports
// them with better context.
func checkSizeLimit(pattern string, limit int64) error {
	if limit <= 0 {
		return nil
	}
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return nil
	}
	if int64(len(prog.Inst))*progInstSize > limit {
		return &ResourceLimitError{Limit: "size", Max: limit}
	}
	return nil
}
