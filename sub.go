package rex

import (
	"strconv"
	"strings"
)

// Sub replaces every non-overlapping match of the pattern in text with
// the expansion of template and returns the resulting string. Matches are
// found exactly as FindAll finds them.
//
// The template grammar is deliberately not backslash-backreference
// compatible; it uses $ references exclusively:
//
//	$$       a literal $
//	$N       capture group N (0 is the whole match)
//	${N}     same, with an explicit delimiter
//	${name}  a named capture group
//
// A reference to a group that does not exist, or that did not participate
// in the match, expands to nothing. A $ followed by anything else is
// literal, so escaping round-trips: expanding "$$" always yields "$".
func (p *Pattern) Sub(template, text string) (string, error) {
	ms, err := p.handle.FindAll(text, -1)
	if err != nil {
		return "", convertMatchErr(p.pattern, err)
	}
	if len(ms) == 0 {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, spans := range ms {
		b.WriteString(text[last:spans[0]])
		p.expand(&b, template, text, spans)
		last = spans[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// expand writes template to b with group references resolved against one
// match. It operates purely on match spans, independent of the engine
// that produced them.
func (p *Pattern) expand(b *strings.Builder, template, text string, spans []int) {
	for len(template) > 0 {
		i := strings.IndexByte(template, '$')
		if i < 0 {
			b.WriteString(template)
			return
		}
		b.WriteString(template[:i])
		template = template[i+1:]

		if len(template) == 0 {
			b.WriteByte('$') // trailing $ is literal
			return
		}

		switch c := template[0]; {
		case c == '$':
			b.WriteByte('$')
			template = template[1:]
		case c == '{':
			end := strings.IndexByte(template, '}')
			if end < 0 {
				b.WriteByte('$') // unterminated ${ is literal
				continue
			}
			p.writeGroupRef(b, template[1:end], text, spans)
			template = template[end+1:]
		case c >= '0' && c <= '9':
			j := 1
			for j < len(template) && template[j] >= '0' && template[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(template[:j])
			if err != nil {
				n = -1 // digit run beyond int range cannot name a group
			}
			p.writeGroup(b, n, text, spans)
			template = template[j:]
		default:
			b.WriteByte('$') // $ followed by anything else is literal
		}
	}
}

// writeGroupRef resolves a ${...} reference, numeric or named.
func (p *Pattern) writeGroupRef(b *strings.Builder, ref, text string, spans []int) {
	if n, err := strconv.Atoi(ref); err == nil {
		p.writeGroup(b, n, text, spans)
		return
	}
	if n, ok := p.byName[ref]; ok {
		p.writeGroup(b, n, text, spans)
	}
	// Undefined name: expands to nothing.
}

// writeGroup appends group n's captured text, or nothing when the group
// does not exist or did not participate.
func (p *Pattern) writeGroup(b *strings.Builder, n int, text string, spans []int) {
	if n < 0 || n >= len(spans)/2 || spans[2*n] < 0 {
		return
	}
	b.WriteString(text[spans[2*n]:spans[2*n+1]])
}
