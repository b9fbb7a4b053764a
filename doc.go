// Package rex provides a regex-matching facade over tiered engines.
//
// rex gives callers one simple API (Compile, Match, Search, FindAll, Sub)
// and internally routes each pattern to the engine that can handle it
// fastest:
//   - linear automaton (coregex): guaranteed linear-time matching
//   - jit (go-re2): RE2 compiled ahead of time to native code
//   - backtracking (regexp2): look-around and backreference support
//
// Tiers are attempted in that order. A static classifier skips the linear
// tier for patterns that plainly need backtracking features, but each
// engine's own compiler has the final say: any compile failure falls
// through to the next tier, so classification mistakes cost a wasted
// attempt, never a wrong answer.
//
// # Quick Start
//
// For one-off matching:
//
//	found, err := rex.IsSearch(`\d+`, "abc123", nil)
//
// For repeated matching, compile once:
//
//	p, err := rex.Compile(`(?P<year>\d{4})-(?P<month>\d{2})`, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := p.Match("2024-05")
//	year, _ := m.GroupByName("year")
//
// Compilation goes through a process-wide concurrent cache keyed by
// (pattern, config): repeated and concurrent compiles of the same pattern
// share one compilation and one Pattern.
//
// # Configuration
//
// The [Config] type controls matching modes and resource limits:
//   - CaseInsensitive, Multiline, IgnoreWhitespace, UnicodeMode
//   - SizeLimit and DFASizeLimit bound compilation cost
//   - BacktrackLimit bounds backtracking search steps at match time
//
// Options an engine cannot express route the pattern to a tier that can;
// no tier ever compiles a pattern with different semantics than asked.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [CompileError]: no tier accepted the pattern
//   - [ResourceLimitError]: SizeLimit/DFASizeLimit overflow
//   - [BacktrackLimitError]: BacktrackLimit exhausted during a match
//   - [GroupError]: invalid group index or name
//
// # Thread Safety
//
// Compiled [Pattern] and [MatchResult] values are immutable and safe for
// concurrent use. The compilation cache is safe for concurrent callers
// and performs at most one compilation per distinct key.
package rex
