//go:build nojit

package engine

// CompileJIT always fails when the module is built with the nojit tag,
// which drops the go-re2 engine and its WebAssembly runtime from the
// binary. The tiered compiler falls through to the backtracking engine.
func CompileJIT(pattern string, opts Options) (Handle, error) {
	return nil, ErrUnavailable
}
