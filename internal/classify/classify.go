// Package classify provides static pattern-syntax scanning.
//
// The scanner estimates which regex features a pattern requires before any
// engine is invoked. It is a fast-path hint only: the tiered compiler treats
// a compile failure from the target engine as the authoritative answer, so
// the scan may over-approximate (flagging a construct inside a character
// class, say) without affecting correctness.
package classify

import "strings"

// Feature is a bitmask of pattern constructs that the linear-time engine
// cannot support.
type Feature uint8

const (
	// Lookahead marks (?=...) and (?!...) assertions.
	Lookahead Feature = 1 << iota
	// Lookbehind marks (?<=...) and (?<!...) assertions.
	Lookbehind
	// Backref marks numbered (\1..\9) and named (\k<name>, (?P=name))
	// backreferences.
	Backref
	// Other marks remaining backtracking-only constructs: atomic groups,
	// conditionals, branch resets, comments and \K.
	Other
)

// None reports whether no backtracking-only feature was detected.
func (f Feature) None() bool { return f == 0 }

// Has reports whether all features in mask are set.
func (f Feature) Has(mask Feature) bool { return f&mask == mask }

// String returns a comma-separated list of detected feature names.
func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(Lookahead) {
		parts = append(parts, "lookahead")
	}
	if f.Has(Lookbehind) {
		parts = append(parts, "lookbehind")
	}
	if f.Has(Backref) {
		parts = append(parts, "backreference")
	}
	if f.Has(Other) {
		parts = append(parts, "other")
	}
	return strings.Join(parts, ",")
}

// otherConstructs are backtracking-only group forms that are neither
// look-arounds nor backreferences. Each is matched as a literal prefix
// after a '(' has been seen.
var otherConstructs = []string{
	"?>", // atomic group
	"?(", // conditional group
	"?|", // branch reset
	"?#", // comment
	"?R", // recursion
	"?&", // subroutine call
}

// Scan performs a single linear pass over the pattern and returns the set
// of features the linear-time engine cannot support. It never compiles.
func Scan(pattern string) Feature {
	var f Feature
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			if i+1 >= len(pattern) {
				break
			}
			next := pattern[i+1]
			switch {
			case next >= '1' && next <= '9':
				f |= Backref
			case next == 'k' && i+2 < len(pattern) && (pattern[i+2] == '<' || pattern[i+2] == '\''):
				f |= Backref
			case next == 'K':
				f |= Other
			}
			i++ // the escaped byte is consumed either way
		case '(':
			rest := pattern[i+1:]
			switch {
			case strings.HasPrefix(rest, "?="), strings.HasPrefix(rest, "?!"):
				f |= Lookahead
			case strings.HasPrefix(rest, "?<="), strings.HasPrefix(rest, "?<!"):
				// Note: (?<name>...) is a named group, not a lookbehind,
				// so only the = and ! forms count.
				f |= Lookbehind
			case strings.HasPrefix(rest, "?P="):
				f |= Backref
			default:
				for _, c := range otherConstructs {
					if strings.HasPrefix(rest, c) {
						f |= Other
						break
					}
				}
			}
		}
	}
	return f
}
