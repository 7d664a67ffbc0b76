package resolver

import "strings"

// Pattern is a compiled glob: a sequence of literal fragments interleaved
// with single-segment wildcards ("*"). A wildcard matches a run of
// characters that doesn't contain "/". Matching is always anchored to the
// full string; there is no support for "**" globstars, character classes,
// or any other glob metacharacter.
//
// This is deliberately much narrower than a general-purpose glob: the only
// thing patterns are ever matched against here is an import specifier or a
// resolved file path, and the only thing callers need back is the ordered
// list of substrings each wildcard captured.
type Pattern struct {
	// literals has one more entry than wildcards: literals[i] is the text
	// that must appear immediately before the i-th wildcard (or, for the
	// last entry, immediately before the end of the string).
	literals []string
}

// CompilePattern parses text once into a Pattern. A pattern with zero
// wildcards degenerates to a plain string-equality check.
func CompilePattern(text string) Pattern {
	var literals []string
	for {
		star := strings.IndexByte(text, '*')
		if star < 0 {
			literals = append(literals, text)
			break
		}
		literals = append(literals, text[:star])
		text = text[star+1:]
	}
	return Pattern{literals: literals}
}

func (p Pattern) WildcardCount() int {
	return len(p.literals) - 1
}

func (p Pattern) String() string {
	return strings.Join(p.literals, "*")
}

// Match checks candidate against the pattern. On success it returns the
// substrings captured by each wildcard, in source order.
func (p Pattern) Match(candidate string) (captures []string, ok bool) {
	if len(p.literals) == 1 {
		// No wildcards: plain equality.
		return nil, candidate == p.literals[0]
	}

	rest := candidate
	if !strings.HasPrefix(rest, p.literals[0]) {
		return nil, false
	}
	rest = rest[len(p.literals[0]):]

	captures = make([]string, 0, p.WildcardCount())
	for i := 1; i < len(p.literals); i++ {
		isLast := i == len(p.literals)-1
		literal := p.literals[i]

		if isLast {
			// The final wildcard's capture is whatever remains before the
			// trailing literal, and it still may not contain "/".
			if !strings.HasSuffix(rest, literal) {
				return nil, false
			}
			capture := rest[:len(rest)-len(literal)]
			if strings.ContainsRune(capture, '/') {
				return nil, false
			}
			captures = append(captures, capture)
			return captures, true
		}

		// A wildcard matches a run of characters with no "/" in it, but the
		// literal that follows is free to start with "/" (that's the usual
		// case: the wildcard fills one path segment and the next literal
		// begins at the separator). Find the literal's leftmost occurrence
		// in rest and only then check the capture in front of it for "/".
		idx := strings.Index(rest, literal)
		if idx == -1 {
			return nil, false
		}
		capture := rest[:idx]
		if strings.ContainsRune(capture, '/') {
			return nil, false
		}
		captures = append(captures, capture)
		rest = rest[idx+len(literal):]
	}

	return captures, rest == ""
}

// Substitute replaces each "*" in template with the corresponding capture,
// positionally. The caller is responsible for having checked that template
// has exactly len(captures) wildcards.
func Substitute(template string, captures []string) string {
	var sb strings.Builder
	i := 0
	for {
		star := strings.IndexByte(template, '*')
		if star < 0 {
			sb.WriteString(template)
			break
		}
		sb.WriteString(template[:star])
		if i < len(captures) {
			sb.WriteString(captures[i])
			i++
		}
		template = template[star+1:]
	}
	return sb.String()
}
