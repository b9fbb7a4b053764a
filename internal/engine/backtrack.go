package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// backtrackStep is the time budget granted per permitted backtracking
// step. regexp2 bounds runaway searches with a match timeout rather than
// a step counter, so the configured step budget is expressed as its
// native deadline.
const backtrackStep = time.Microsecond

// backtrackHandle adapts regexp2, the backtracking engine of last resort.
// It is the only tier that accepts look-around assertions, backreferences
// and free-spacing patterns. regexp2 reports rune offsets and numbers
// groups in .NET order (unnamed groups before named ones); the adapter
// converts offsets to bytes and remaps group numbers to opening-paren
// order so indices agree with the other tiers.
type backtrackHandle struct {
	re    *regexp2.Regexp
	names []string
	order []int // pattern-order index -> regexp2 group number, nil = identity
	limit int
}

// CompileBacktrack compiles pattern with the regexp2 engine. The RE2
// option is always set so that (?P<name>...) groups and (?P=name)
// backreferences compile alongside the full .NET syntax.
func CompileBacktrack(pattern string, opts Options) (Handle, error) {
	var ropts regexp2.RegexOptions = regexp2.RE2
	if opts.CaseInsensitive {
		ropts |= regexp2.IgnoreCase
	}
	if opts.Multiline {
		ropts |= regexp2.Multiline
	}
	if opts.IgnoreWhitespace {
		ropts |= regexp2.IgnorePatternWhitespace
	}

	re, err := regexp2.Compile(pattern, ropts)
	if err != nil {
		return nil, err
	}
	if opts.BacktrackLimit > 0 {
		re.MatchTimeout = time.Duration(opts.BacktrackLimit) * backtrackStep
	}

	order := groupOrder(re, pattern, opts.IgnoreWhitespace)
	return &backtrackHandle{
		re:    re,
		names: subexpNames(re, order),
		order: order,
		limit: opts.BacktrackLimit,
	}, nil
}

func (h *backtrackHandle) FindAll(text string, n int) ([][]int, error) {
	if n == 0 {
		return nil, nil
	}
	conv := newRuneOffsets(text)

	var out [][]int
	m, err := h.re.FindStringMatch(text)
	for err == nil && m != nil {
		out = append(out, h.spans(m, conv))
		if n > 0 && len(out) >= n {
			break
		}
		// FindNextMatch resumes after the previous match, advancing one
		// rune past zero-width matches so the scan terminates.
		m, err = h.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, &BacktrackLimitError{Limit: h.limit}
	}
	return out, nil
}

func (h *backtrackHandle) GroupNames() []string {
	return h.names
}

// spans converts one regexp2 match into flat byte-offset pairs aligned
// with GroupNames. A group with no captures did not participate.
func (h *backtrackHandle) spans(m *regexp2.Match, conv *runeOffsets) []int {
	raw := make([]int, 0, 2*len(h.names))
	for _, g := range m.Groups() {
		if len(g.Captures) == 0 {
			raw = append(raw, -1, -1)
			continue
		}
		raw = append(raw, conv.byte(g.Index), conv.byte(g.Index+g.Length))
	}
	for len(raw) < 2*len(h.names) {
		raw = append(raw, -1, -1)
	}
	if h.order == nil {
		return raw
	}
	spans := make([]int, len(raw))
	spans[0], spans[1] = raw[0], raw[1]
	for i := 1; i < len(h.names); i++ {
		j := h.order[i]
		spans[2*i], spans[2*i+1] = raw[2*j], raw[2*j+1]
	}
	return spans
}

// subexpNames builds a stdlib-shaped name table: index-aligned, empty
// string for group 0 and unnamed groups. regexp2 names unnamed groups
// after their number, which is folded back to the empty string. A non-nil
// order permutes the table from engine numbering into pattern order.
func subexpNames(re *regexp2.Regexp, order []int) []string {
	nums := re.GetGroupNumbers()
	max := 0
	for _, n := range nums {
		if n > max {
			max = n
		}
	}
	raw := make([]string, max+1)
	for i := 1; i <= max; i++ {
		name := re.GroupNameFromNumber(i)
		if name == strconv.Itoa(i) {
			continue
		}
		raw[i] = name
	}
	if order == nil {
		return raw
	}
	names := make([]string, len(raw))
	for i := 1; i < len(names); i++ {
		names[i] = raw[order[i]]
	}
	return names
}

// scannedGroup is one capturing group found by scanGroups, in
// opening-paren order. name is empty for unnamed groups.
type scannedGroup struct {
	name string
}

// scanGroups walks the pattern and lists its capturing groups in textual
// order. It tracks escapes, character classes and, in free-spacing mode,
// end-of-line comments, and skips every (?...) form that does not
// capture: non-capturing groups, inline flags, look-arounds, atomic
// groups and comments. A nil result means the scan could not make sense
// of the pattern.
func scanGroups(pattern string, freeSpacing bool) []scannedGroup {
	gs := []scannedGroup{}
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			// [^] and []...] keep the first ] literal.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
			}
		case freeSpacing && c == '#':
			for i < len(pattern) && pattern[i] != '\n' {
				i++
			}
		case c == '(':
			rest := pattern[i+1:]
			switch {
			case strings.HasPrefix(rest, "?<=") || strings.HasPrefix(rest, "?<!"):
				// look-behind, not a group
			case strings.HasPrefix(rest, "?P<") || strings.HasPrefix(rest, "?<"):
				start := i + 3
				if rest[1] == 'P' {
					start++
				}
				end := strings.IndexByte(pattern[start:], '>')
				if end < 0 {
					return nil
				}
				gs = append(gs, scannedGroup{name: pattern[start : start+end]})
			case strings.HasPrefix(rest, "?'"):
				start := i + 3
				end := strings.IndexByte(pattern[start:], '\'')
				if end < 0 {
					return nil
				}
				gs = append(gs, scannedGroup{name: pattern[start : start+end]})
			case strings.HasPrefix(rest, "?"):
				// non-capturing form
			default:
				gs = append(gs, scannedGroup{})
			}
		}
	}
	return gs
}

// groupOrder builds the permutation from pattern-order group indices to
// regexp2's .NET group numbers, which assign unnamed groups first and
// named groups after. It returns nil when the pattern scan and the
// engine's group table disagree, in which case the adapter keeps the
// engine's own numbering rather than guess.
func groupOrder(re *regexp2.Regexp, pattern string, freeSpacing bool) []int {
	scanned := scanGroups(pattern, freeSpacing)
	nums := re.GetGroupNumbers()
	if scanned == nil || len(scanned) != len(nums)-1 {
		return nil
	}

	order := make([]int, len(scanned)+1)
	seen := make(map[int]bool, len(scanned)+1)
	seen[0] = true
	unnamed := 0
	for i, g := range scanned {
		var num int
		if g.name == "" {
			unnamed++
			num = unnamed
		} else {
			num = re.GroupNumberFromName(g.name)
		}
		if num <= 0 || num > len(scanned) || seen[num] {
			return nil
		}
		seen[num] = true
		order[i+1] = num
	}
	return order
}

// runeOffsets maps rune indices to byte offsets for one input text.
type runeOffsets struct {
	off []int
}

func newRuneOffsets(s string) *runeOffsets {
	off := make([]int, 0, len(s)+1)
	for i := range s {
		off = append(off, i)
	}
	off = append(off, len(s))
	return &runeOffsets{off: off}
}

func (r *runeOffsets) byte(runeIdx int) int {
	if runeIdx < 0 {
		return -1
	}
	if runeIdx >= len(r.off) {
		return r.off[len(r.off)-1]
	}
	return r.off[runeIdx]
}
