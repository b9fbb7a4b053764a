package rex_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/rex"
)

func TestIsMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		config  *rex.Config
		want    bool
	}{
		{
			name:    "digits anywhere",
			pattern: `\d+`,
			text:    "abc123",
			want:    true,
		},
		{
			name:    "no digits",
			pattern: `\d+`,
			text:    "abcdef",
			want:    false,
		},
		{
			name:    "case sensitive miss",
			pattern: `HELLO`,
			text:    "hello world",
			want:    false,
		},
		{
			name:    "case insensitive hit",
			pattern: `HELLO`,
			text:    "hello world",
			config:  &rex.Config{CaseInsensitive: true},
			want:    true,
		},
		{
			name:    "multiline anchor",
			pattern: `^world`,
			text:    "hello\nworld",
			config:  &rex.Config{Multiline: true},
			want:    true,
		},
		{
			name:    "lookahead",
			pattern: `foo(?=bar)`,
			text:    "foobar",
			want:    true,
		},
		{
			name:    "backreference",
			pattern: `(\w+) \1`,
			text:    "hey hey",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rex.IsMatch(tt.pattern, tt.text, tt.config)
			if err != nil {
				t.Fatalf("IsMatch: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsMatch(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
			}
		})
	}
}

func TestTierSelection(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		config  *rex.Config
		want    rex.Engine
	}{
		{
			name:    "plain pattern uses linear tier",
			pattern: `\d+`,
			want:    rex.EngineLinear,
		},
		{
			name:    "named group stays linear",
			pattern: `(?P<word>\w+)`,
			want:    rex.EngineLinear,
		},
		{
			name:    "lookbehind needs backtracking",
			pattern: `(?<=USD)\d+`,
			want:    rex.EngineBacktrack,
		},
		{
			name:    "lookahead needs backtracking",
			pattern: `foo(?=bar)`,
			want:    rex.EngineBacktrack,
		},
		{
			name:    "backreference needs backtracking",
			pattern: `(a)\1`,
			want:    rex.EngineBacktrack,
		},
		{
			name:    "atomic group needs backtracking",
			pattern: `(?>a+)b`,
			want:    rex.EngineBacktrack,
		},
		{
			name:    "free-spacing routes past the automaton tiers",
			pattern: `\d+  # digits`,
			config:  &rex.Config{IgnoreWhitespace: true},
			want:    rex.EngineBacktrack,
		},
		{
			name:    "unicode classes route past the automaton tiers",
			pattern: `\w+`,
			config:  &rex.Config{UnicodeMode: true},
			want:    rex.EngineBacktrack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := rex.Compile(tt.pattern, tt.config)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if p.Engine() != tt.want {
				t.Errorf("Engine() = %v (%s), want %v", p.Engine(), p.EngineInfo(), tt.want)
			}
		})
	}
}

// Tier selection must be deterministic and independent of cache contents.
func TestTierSelectionDeterministic(t *testing.T) {
	patterns := []string{`\d+`, `(?<=USD)\d+`, `(a)\1`, `(?P<x>\w)-`}
	for _, pattern := range patterns {
		a := rex.NewCache(0)
		b := rex.NewCache(0)
		pa, err := a.GetOrCompile(pattern, nil, rex.EngineAuto)
		if err != nil {
			t.Fatalf("compile %q: %v", pattern, err)
		}
		pb, err := b.GetOrCompile(pattern, nil, rex.EngineAuto)
		if err != nil {
			t.Fatalf("compile %q: %v", pattern, err)
		}
		if pa.Engine() != pb.Engine() {
			t.Errorf("pattern %q: tiers differ between caches: %v vs %v", pattern, pa.Engine(), pb.Engine())
		}
	}
}

func TestSearchLookbehind(t *testing.T) {
	m, err := rex.Search(`(?<=USD)\d+`, "Price USD100", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.String() != "100" {
		t.Errorf("match text = %q, want %q", m.String(), "100")
	}
	if m.Start() != 9 || m.End() != 12 {
		t.Errorf("span = (%d,%d), want (9,12)", m.Start(), m.End())
	}

	p, err := rex.Compile(`(?<=USD)\d+`, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Engine() != rex.EngineBacktrack {
		t.Errorf("Engine() = %v, want backtracking tier", p.Engine())
	}
}

// P-style named groups must compile on the backtracking tier too, since
// a look-around in the same pattern forces it there.
func TestNamedGroupWithLookbehind(t *testing.T) {
	p, err := rex.Compile(`(?<=USD)(?P<amt>\d+)`, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Engine() != rex.EngineBacktrack {
		t.Fatalf("Engine() = %v, want backtracking tier", p.Engine())
	}

	m, err := p.Search("Price USD100")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}
	amt, err := m.GroupByName("amt")
	if err != nil {
		t.Fatalf("GroupByName: %v", err)
	}
	if amt != "100" {
		t.Errorf("group amt = %q, want %q", amt, "100")
	}
}

func TestMatchAnchored(t *testing.T) {
	p, err := rex.Compile(`\d+`, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	m, err := p.Match("123abc")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m == nil || m.String() != "123" {
		t.Fatalf("Match(\"123abc\") = %v, want \"123\"", m)
	}

	// The digits start at offset 3, so the anchored attempt fails even
	// though Search would succeed.
	m, err = p.Match("abc123")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m != nil {
		t.Errorf("Match(\"abc123\") = %q, want no match", m.String())
	}
}

func TestNamedGroups(t *testing.T) {
	m, err := rex.Match(`(?P<year>\d{4})-(?P<month>\d{2})`, "2024-05", nil)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}

	year, err := m.GroupByName("year")
	if err != nil {
		t.Fatalf("GroupByName(year): %v", err)
	}
	if year != "2024" {
		t.Errorf("group year = %q, want %q", year, "2024")
	}

	first, err := m.Group(1)
	if err != nil {
		t.Fatalf("Group(1): %v", err)
	}
	if first != "2024" {
		t.Errorf("group 1 = %q, want %q", first, "2024")
	}

	month, err := m.GroupByName("month")
	if err != nil {
		t.Fatalf("GroupByName(month): %v", err)
	}
	if month != "05" {
		t.Errorf("group month = %q, want %q", month, "05")
	}
}

func TestGroupNames(t *testing.T) {
	p, err := rex.Compile(`(?P<year>\d{4})-(\d+)-(?P<day>\d{2})`, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []string{"year", "day"}
	got := p.GroupNames()
	if len(got) != len(want) {
		t.Fatalf("GroupNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GroupNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if p.NumGroups() != 3 {
		t.Errorf("NumGroups() = %d, want 3", p.NumGroups())
	}
}

func TestEngineOverride(t *testing.T) {
	p, err := rex.CompileWithEngine(`\d+`, nil, rex.EngineLinear)
	if err != nil {
		t.Fatalf("CompileWithEngine: %v", err)
	}
	if p.Engine() != rex.EngineLinear {
		t.Errorf("Engine() = %v, want linear", p.Engine())
	}
	if !strings.Contains(p.EngineInfo(), "linear") {
		t.Errorf("EngineInfo() = %q, want linear tier name", p.EngineInfo())
	}

	// A forced tier that cannot accept the pattern is terminal: no
	// fallback to the backtracking tier happens.
	_, err = rex.CompileWithEngine(`(?<=x)y`, nil, rex.EngineLinear)
	var cerr *rex.CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if cerr.Engine != rex.EngineLinear {
		t.Errorf("CompileError.Engine = %v, want linear", cerr.Engine)
	}
}

// A config option the forced tier cannot express surfaces as the
// ErrUnsupportedConfig sentinel inside the CompileError.
func TestUnsupportedConfigSentinel(t *testing.T) {
	_, err := rex.CompileWithEngine(`\w+`, &rex.Config{UnicodeMode: true}, rex.EngineLinear)
	if !errors.Is(err, rex.ErrUnsupportedConfig) {
		t.Fatalf("expected ErrUnsupportedConfig in the chain, got %v", err)
	}
	var cerr *rex.CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompileError, got %v", err)
	}
}

func TestCompileErrorAllTiers(t *testing.T) {
	_, err := rex.Compile(`(unclosed`, nil)
	var cerr *rex.CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if cerr.Cause == nil {
		t.Error("CompileError.Cause is nil")
	}
}

func TestSizeLimitFallback(t *testing.T) {
	cfg := &rex.Config{SizeLimit: 8}

	// The automaton tiers refuse the oversized program; the backtracking
	// tier, which has no program-size notion, picks the pattern up.
	p, err := rex.Compile(`\d+\w+\s+`, cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Engine() != rex.EngineBacktrack {
		t.Errorf("Engine() = %v, want backtracking tier after size-limit fallback", p.Engine())
	}

	// With a forced tier the overflow is terminal and typed.
	_, err = rex.CompileWithEngine(`\d+\w+\s+`, cfg, rex.EngineLinear)
	var rerr *rex.ResourceLimitError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ResourceLimitError, got %v", err)
	}
	if rerr.Limit != "size" {
		t.Errorf("ResourceLimitError.Limit = %q, want \"size\"", rerr.Limit)
	}
}

func TestBacktrackLimit(t *testing.T) {
	cfg := &rex.Config{BacktrackLimit: 1000}
	p, err := rex.CompileWithEngine(`(a+)+$`, cfg, rex.EngineBacktrack)
	if err != nil {
		t.Fatalf("CompileWithEngine: %v", err)
	}

	// Catastrophic backtracking input: a long run of a's that cannot
	// reach $. The match attempt must fail with a typed error instead of
	// hanging; it is never reported as "no match".
	text := strings.Repeat("a", 64) + "!"
	_, err = p.IsSearch(text)
	var berr *rex.BacktrackLimitError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BacktrackLimitError, got %v", err)
	}
	if berr.Limit != 1000 {
		t.Errorf("BacktrackLimitError.Limit = %d, want 1000", berr.Limit)
	}
}

func TestFindAll(t *testing.T) {
	got, err := rex.FindAll(`\d+`, "a1b22c333", nil)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	want := []string{"1", "22", "333"}
	if len(got) != len(want) {
		t.Fatalf("FindAll = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// findall must make forward progress even when the pattern can match the
// empty string.
func TestFindAllForwardProgress(t *testing.T) {
	p, err := rex.Compile(`a*`, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ms, err := p.FindAllMatches("baab")
	if err != nil {
		t.Fatalf("FindAllMatches: %v", err)
	}
	if len(ms) == 0 {
		t.Fatal("expected matches")
	}
	prevEnd := -1
	for i, m := range ms {
		if m.Start() < prevEnd {
			t.Fatalf("match %d starts at %d before previous end %d", i, m.Start(), prevEnd)
		}
		if m.Start() == prevEnd && m.End() == m.Start() && i > 0 && ms[i-1].End() == ms[i-1].Start() {
			t.Fatalf("two zero-width matches at offset %d", m.Start())
		}
		prevEnd = m.End()
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	tests := []string{
		"a.b+c",
		"1+1=2?",
		"(parens) [brackets] {braces}",
		"back\\slash and $dollar^",
		"plain text",
	}
	for _, s := range tests {
		p, err := rex.Compile(rex.Escape(s), nil)
		if err != nil {
			t.Fatalf("Compile(Escape(%q)): %v", s, err)
		}
		ok, err := p.IsSearch("prefix " + s + " suffix")
		if err != nil {
			t.Fatalf("IsSearch: %v", err)
		}
		if !ok {
			t.Errorf("Escape(%q) does not match its own literal", s)
		}
	}

	// The escaped form must match only the literal text: the unescaped
	// metacharacters lose their meaning.
	p, err := rex.Compile(rex.Escape("a.c"), nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ok, err := p.IsSearch("abc")
	if err != nil {
		t.Fatalf("IsSearch: %v", err)
	}
	if ok {
		t.Error("escaped dot still matches any character")
	}
}

func TestSplit(t *testing.T) {
	p, err := rex.Compile(`,\s*`, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := p.Split("a, b,c,  d")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Split = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Split[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// No match: the whole text comes back as one piece.
	got, err = p.Split("abc")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 1 || got[0] != "abc" {
		t.Errorf("Split(\"abc\") = %v, want [abc]", got)
	}
}

func TestFindIndex(t *testing.T) {
	p, err := rex.Compile(`\d+`, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	idx, err := p.FindIndex("ab12cd")
	if err != nil {
		t.Fatalf("FindIndex: %v", err)
	}
	if len(idx) != 2 || idx[0] != 2 || idx[1] != 4 {
		t.Errorf("FindIndex = %v, want [2 4]", idx)
	}

	idx, err = p.FindIndex("abcd")
	if err != nil {
		t.Fatalf("FindIndex: %v", err)
	}
	if idx != nil {
		t.Errorf("FindIndex = %v, want nil", idx)
	}
}
