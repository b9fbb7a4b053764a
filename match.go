package rex

import "fmt"

// Span is a half-open byte-offset range within the matched text.
// A group that did not participate in the match reports -1, -1.
type Span struct {
	Start int
	End   int
}

// Matched reports whether the group participated in the match.
// A participating group may still be empty (Start == End).
func (s Span) Matched() bool {
	return s.Start >= 0
}

// MatchResult is an immutable snapshot of one match. It holds the source
// text, so the matched substrings stay valid for the result's lifetime,
// and is safe to share across goroutines.
type MatchResult struct {
	text   string
	spans  []int // flat start/end pairs, group 0 first, -1/-1 when absent
	names  []string
	byName map[string]int
}

// Start returns the byte offset where the whole match begins.
func (m *MatchResult) Start() int {
	return m.spans[0]
}

// End returns the byte offset just past the whole match.
func (m *MatchResult) End() int {
	return m.spans[1]
}

// String returns the whole match text, equivalent to Group(0).
func (m *MatchResult) String() string {
	return m.text[m.spans[0]:m.spans[1]]
}

// NumGroups returns the number of capturing groups, not counting the
// whole match.
func (m *MatchResult) NumGroups() int {
	return len(m.names) - 1
}

// Group returns the text of the i-th capturing group; index 0 is the
// whole match. A group that participated but captured nothing and a group
// that did not participate both return the empty string; use Span or
// Groups to tell them apart. An index beyond the group count is a
// GroupError.
func (m *MatchResult) Group(i int) (string, error) {
	span, err := m.Span(i)
	if err != nil {
		return "", err
	}
	if !span.Matched() {
		return "", nil
	}
	return m.text[span.Start:span.End], nil
}

// GroupByName returns the text of the named capturing group. A name the
// pattern does not define is a GroupError.
func (m *MatchResult) GroupByName(name string) (string, error) {
	i, ok := m.byName[name]
	if !ok {
		return "", &GroupError{Index: -1, Name: name, Message: fmt.Sprintf("unknown group name %q", name)}
	}
	return m.Group(i)
}

// Span returns the byte-offset range of the i-th capturing group, with
// index 0 addressing the whole match.
func (m *MatchResult) Span(i int) (Span, error) {
	if i < 0 || i >= len(m.spans)/2 {
		return Span{Start: -1, End: -1}, &GroupError{Index: i, Message: fmt.Sprintf("group %d out of range", i)}
	}
	return Span{Start: m.spans[2*i], End: m.spans[2*i+1]}, nil
}

// Groups returns the spans of every capturing group in index order,
// excluding the whole match. Groups that did not participate report
// -1, -1, distinguishing them from groups that captured an empty string.
func (m *MatchResult) Groups() []Span {
	out := make([]Span, 0, m.NumGroups())
	for i := 1; i <= m.NumGroups(); i++ {
		out = append(out, Span{Start: m.spans[2*i], End: m.spans[2*i+1]})
	}
	return out
}

// LastIndex returns the index of the highest-numbered group that
// participated in the match. It is a GroupError when no group
// participated.
func (m *MatchResult) LastIndex() (int, error) {
	for i := m.NumGroups(); i >= 1; i-- {
		if m.spans[2*i] >= 0 {
			return i, nil
		}
	}
	return 0, &GroupError{Index: -1, Message: "no group participated in the match"}
}
