//go:build !nojit

package engine

import (
	re2 "github.com/wasilibs/go-re2"
	"github.com/wasilibs/go-re2/experimental"
)

// jitHandle adapts go-re2, which runs RE2 compiled ahead of time to
// native code. It covers the same syntax as the linear tier but with a
// different compiler and different internal limits, so patterns the
// linear tier rejects for size can still land here.
type jitHandle struct {
	re *re2.Regexp
}

// CompileJIT compiles pattern with the go-re2 engine. Like the linear
// tier it cannot express free-spacing or Unicode-aware classes; matching
// is byte-oriented (latin-1 mode), the analog of Unicode mode being off.
func CompileJIT(pattern string, opts Options) (Handle, error) {
	if opts.IgnoreWhitespace || opts.Unicode {
		return nil, ErrUnsupportedConfig
	}
	if err := checkSizeLimit(inlineFlags(opts)+pattern, opts.SizeLimit); err != nil {
		return nil, err
	}

	re, err := experimental.CompileLatin1(inlineFlags(opts) + pattern)
	if err != nil {
		return nil, err
	}
	return &jitHandle{re: re}, nil
}

func (h *jitHandle) FindAll(text string, n int) ([][]int, error) {
	return h.re.FindAllStringSubmatchIndex(text, n), nil
}

func (h *jitHandle) GroupNames() []string {
	return h.re.SubexpNames()
}
