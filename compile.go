package rex

import (
	"github.com/kolkov/rex/internal/classify"
	"github.com/kolkov/rex/internal/engine"
)

// Engine identifies one of the matching engine tiers, ordered by
// selection priority.
type Engine int

const (
	// EngineAuto selects the best tier automatically (the default).
	EngineAuto Engine = iota
	// EngineLinear is the linear-time automaton engine (coregex).
	// Guaranteed O(m*n) matching; no look-around or backreferences.
	EngineLinear
	// EngineJIT is RE2 compiled ahead of time to native code (go-re2).
	EngineJIT
	// EngineBacktrack is the backtracking engine (regexp2). Full
	// look-around and backreference support, bounded by BacktrackLimit.
	EngineBacktrack
)

// String returns a short tier name.
func (e Engine) String() string {
	switch e {
	case EngineAuto:
		return "auto"
	case EngineLinear:
		return "linear"
	case EngineJIT:
		return "jit"
	case EngineBacktrack:
		return "backtracking"
	}
	return "unknown"
}

// Info returns a descriptive tier name including the underlying library.
func (e Engine) Info() string {
	switch e {
	case EngineLinear:
		return "linear automaton (coregex)"
	case EngineJIT:
		return "jit (go-re2)"
	case EngineBacktrack:
		return "backtracking (regexp2)"
	}
	return "unknown"
}

// compileTier invokes one engine's compiler.
func compileTier(tier Engine, pattern string, opts engine.Options) (engine.Handle, error) {
	switch tier {
	case EngineLinear:
		return engine.CompileLinear(pattern, opts)
	case EngineJIT:
		return engine.CompileJIT(pattern, opts)
	case EngineBacktrack:
		return engine.CompileBacktrack(pattern, opts)
	}
	return nil, engine.ErrUnavailable
}

// compile attempts engine tiers in priority order and returns a Pattern
// tagged with the tier that accepted the pattern.
//
// The classifier is consulted only to skip the linear tier when the
// pattern plainly needs backtracking features; it is never trusted for
// acceptance. Each tier's own compiler is the authority: any compile
// failure, including resource-limit overflow, falls through to the next
// tier. With an explicit override only that tier is attempted and its
// failure is terminal.
func compile(pattern string, cfg Config, override Engine) (*Pattern, error) {
	opts := cfg.engineOptions()

	if override != EngineAuto {
		h, err := compileTier(override, pattern, opts)
		if err != nil {
			return nil, &CompileError{Engine: override, Pattern: pattern, Cause: convertCompileErr(err)}
		}
		return newPattern(pattern, cfg, override, h), nil
	}

	tiers := []Engine{EngineLinear, EngineJIT, EngineBacktrack}
	if !classify.Scan(pattern).None() {
		tiers = tiers[1:]
	}

	var (
		lastTier Engine
		lastErr  error
	)
	for _, tier := range tiers {
		h, err := compileTier(tier, pattern, opts)
		if err == nil {
			return newPattern(pattern, cfg, tier, h), nil
		}
		lastTier, lastErr = tier, err
	}
	return nil, &CompileError{Engine: lastTier, Pattern: pattern, Cause: convertCompileErr(lastErr)}
}
