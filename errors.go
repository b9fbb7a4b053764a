package rex

import (
	"fmt"

	"github.com/kolkov/rex/internal/engine"
)

// ErrEngineUnavailable reports an engine tier that was excluded from this
// build (for example the JIT tier under the nojit build tag).
var ErrEngineUnavailable = engine.ErrUnavailable

// ErrUnsupportedConfig reports a configuration option the selected engine
// cannot express (for example UnicodeMode on a forced linear tier). Under
// tiered selection it triggers fallback; with a forced engine it surfaces
// as the CompileError's Cause.
var ErrUnsupportedConfig = engine.ErrUnsupportedConfig

// CompileError reports that a pattern could not be compiled.
// Engine names the last tier attempted; Cause is that tier's failure.
type CompileError struct {
	Engine  Engine // last tier attempted
	Pattern string // pattern source text
	Cause   error  // underlying engine error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error (%s): %v", e.Engine, e.Cause)
}

// Unwrap returns the underlying engine error.
func (e *CompileError) Unwrap() error {
	return e.Cause
}

// ResourceLimitError reports a compile-time limit overflow (SizeLimit or
// DFASizeLimit). It appears as the Cause of a CompileError and, when no
// engine override is forced, triggers fallback to the next tier.
type ResourceLimitError struct {
	Limit string // "size" or "dfa-size"
	Max   int64  // configured bound in bytes
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("compiled pattern exceeds %s limit of %d bytes", e.Limit, e.Max)
}

// BacktrackLimitError reports that a match attempt on the backtracking
// engine exhausted the configured BacktrackLimit. It is a match-time
// failure, never silently reported as "no match".
type BacktrackLimitError struct {
	Pattern string // pattern source text
	Limit   int    // configured step budget
}

func (e *BacktrackLimitError) Error() string {
	return fmt.Sprintf("backtrack limit of %d steps exceeded matching %q", e.Limit, e.Pattern)
}

// GroupError reports an invalid capture group access: a numeric index out
// of range or a name the pattern does not define.
type GroupError struct {
	Index   int    // offending index, -1 when the access was by name
	Name    string // offending name, empty when the access was by index
	Message string // error description
}

func (e *GroupError) Error() string {
	return "group error: " + e.Message
}

// convertCompileErr maps internal engine compile failures to public types.
func convertCompileErr(err error) error {
	if rl, ok := err.(*engine.ResourceLimitError); ok {
		return &ResourceLimitError{Limit: rl.Limit, Max: rl.Max}
	}
	return err
}

// convertMatchErr maps internal engine match failures to public types.
func convertMatchErr(pattern string, err error) error {
	if bl, ok := err.(*engine.BacktrackLimitError); ok {
		return &BacktrackLimitError{Pattern: pattern, Limit: bl.Limit}
	}
	return err
}
