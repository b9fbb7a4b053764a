package rex

import (
	"github.com/coregx/coregex"

	"github.com/kolkov/rex/internal/engine"
)

// Pattern represents a compiled regular expression bound to exactly one
// engine tier. It is immutable and safe for concurrent use; matching
// operations never mutate it.
type Pattern struct {
	pattern string
	cfg     Config
	tier    Engine
	handle  engine.Handle
	names   []string       // index-aligned group names, [0] == ""
	byName  map[string]int // name -> group index
}

func newPattern(pattern string, cfg Config, tier Engine, h engine.Handle) *Pattern {
	names := h.GroupNames()
	byName := make(map[string]int, len(names))
	for i, name := range names {
		if name != "" {
			byName[name] = i
		}
	}
	return &Pattern{
		pattern: pattern,
		cfg:     cfg,
		tier:    tier,
		handle:  h,
		names:   names,
		byName:  byName,
	}
}

// String returns the source pattern text.
func (p *Pattern) String() string {
	return p.pattern
}

// Config returns the normalized configuration the pattern was compiled with.
func (p *Pattern) Config() Config {
	return p.cfg
}

// Engine returns the tier that compiled the pattern.
func (p *Pattern) Engine() Engine {
	return p.tier
}

// EngineInfo names the tier actually selected for this pattern.
func (p *Pattern) EngineInfo() string {
	return p.tier.Info()
}

// NumGroups returns the number of capturing groups, not counting the
// whole match.
func (p *Pattern) NumGroups() int {
	return len(p.names) - 1
}

// GroupNames returns the pattern's named groups in group-index order.
func (p *Pattern) GroupNames() []string {
	var names []string
	for _, name := range p.names[1:] {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// findOne returns the leftmost match spans, or nil when there is none.
func (p *Pattern) findOne(text string) ([]int, error) {
	ms, err := p.handle.FindAll(text, 1)
	if err != nil {
		return nil, convertMatchErr(p.pattern, err)
	}
	if len(ms) == 0 {
		return nil, nil
	}
	return ms[0], nil
}

// IsMatch reports whether the pattern matches text. Pure existence
// check; no MatchResult is allocated. Unlike Match it is not anchored:
// a match anywhere in text counts.
func (p *Pattern) IsMatch(text string) (bool, error) {
	return p.IsSearch(text)
}

// IsSearch reports whether the pattern matches anywhere in text.
func (p *Pattern) IsSearch(text string) (bool, error) {
	spans, err := p.findOne(text)
	if err != nil {
		return false, err
	}
	return spans != nil, nil
}

// Match attempts an anchored-at-start match and returns its result, or
// nil when text does not match at its first byte.
func (p *Pattern) Match(text string) (*MatchResult, error) {
	spans, err := p.findOne(text)
	if err != nil {
		return nil, err
	}
	if spans == nil || spans[0] != 0 {
		return nil, nil
	}
	return p.newResult(text, spans), nil
}

// Search returns the first match found scanning text left to right, or
// nil when there is none.
func (p *Pattern) Search(text string) (*MatchResult, error) {
	spans, err := p.findOne(text)
	if err != nil {
		return nil, err
	}
	if spans == nil {
		return nil, nil
	}
	return p.newResult(text, spans), nil
}

// FindIndex returns the start and end byte offsets of the first match,
// or nil when there is none.
func (p *Pattern) FindIndex(text string) ([]int, error) {
	spans, err := p.findOne(text)
	if err != nil || spans == nil {
		return nil, err
	}
	return []int{spans[0], spans[1]}, nil
}

// FindAll returns the text of every non-overlapping match in left-to-right
// order. After each match, scanning resumes at the match's end offset, or
// one position later for a zero-width match, so the scan always
// terminates.
func (p *Pattern) FindAll(text string) ([]string, error) {
	ms, err := p.handle.FindAll(text, -1)
	if err != nil {
		return nil, convertMatchErr(p.pattern, err)
	}
	if len(ms) == 0 {
		return nil, nil
	}
	out := make([]string, len(ms))
	for i, spans := range ms {
		out[i] = text[spans[0]:spans[1]]
	}
	return out, nil
}

// FindAllMatches is like FindAll but returns full match results with
// capture group access.
func (p *Pattern) FindAllMatches(text string) ([]*MatchResult, error) {
	ms, err := p.handle.FindAll(text, -1)
	if err != nil {
		return nil, convertMatchErr(p.pattern, err)
	}
	if len(ms) == 0 {
		return nil, nil
	}
	out := make([]*MatchResult, len(ms))
	for i, spans := range ms {
		out[i] = p.newResult(text, spans)
	}
	return out, nil
}

// Split slices text into the substrings between matches. A text with no
// matches yields a single element holding the whole text.
func (p *Pattern) Split(text string) ([]string, error) {
	ms, err := p.handle.FindAll(text, -1)
	if err != nil {
		return nil, convertMatchErr(p.pattern, err)
	}
	parts := make([]string, 0, len(ms)+1)
	last := 0
	for _, spans := range ms {
		parts = append(parts, text[last:spans[0]])
		last = spans[1]
	}
	parts = append(parts, text[last:])
	return parts, nil
}

// newResult snapshots one match. The spans slice is owned by the result
// from here on; text is an immutable Go string, so holding it keeps the
// matched substrings alive without copying.
func (p *Pattern) newResult(text string, spans []int) *MatchResult {
	return &MatchResult{
		text:   text,
		spans:  spans,
		names:  p.names,
		byName: p.byName,
	}
}

// Escape returns text with every character meaningful to pattern syntax
// escaped, so that the result compiled as a pattern matches text
// literally.
func Escape(text string) string {
	return coregex.QuoteMeta(text)
}
