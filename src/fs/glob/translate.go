package glob

import (
	"strings"
)

// toComponentRegex translates a single shell-glob path component (the
// caller already split on "/" outside bracket expressions, so a "/" can
// only appear inside a bracket) into an equivalent regular expression
// fragment. It is a direct, char-by-char translation:
//
//	literal char -> escaped literal ("/" outside a bracket becomes "\/")
//	?            -> [^/]        (matches exactly one character, never "/")
//	*            -> [^/]*       (zero or more characters, never "/")
//	** (or more) -> .*          (zero or more characters, "/" included)
//	[...]        -> passed through mostly verbatim, translating a leading
//	                "!" to "^" ([^de] unaffected, [!fg] -> [^fg]) and
//	                tolerating a literal "]" immediately after "[", "[!" or
//	                "[^"
//
// The result is intended to be anchored and combined with other components
// by the caller; it does not itself anchor anything.
func toComponentRegex(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch c {
		case '?':
			b.WriteString("[^/]")
			i++
		case '*':
			j := i
			for j < len(runes) && runes[j] == '*' {
				j++
			}
			if j-i >= 2 {
				b.WriteString(".*")
			} else {
				b.WriteString("[^/]*")
			}
			i = j
		case '[':
			consumed := translateBracket(runes[i:], &b)
			i += consumed
		default:
			writeEscaped(&b, c)
			i++
		}
	}
	return b.String()
}

// translateBracket translates a bracket expression starting at runes[0],
// which must be '['. It writes the translated expression to b and returns
// the number of runes consumed. If the bracket is never closed, it is
// treated as a literal "[" (one rune consumed) so the caller can detect the
// malformed pattern (see hasUnterminatedBracket).
func translateBracket(runes []rune, b *strings.Builder) int {
	end := findBracketEnd(runes)
	if end < 0 {
		writeEscaped(b, '[')
		return 1
	}
	inner := runes[1:end]
	b.WriteRune('[')
	if len(inner) > 0 && (inner[0] == '!' || inner[0] == '^') {
		b.WriteRune('^')
		inner = inner[1:]
	}
	b.WriteString(string(inner))
	b.WriteRune(']')
	return end + 1
}

// findBracketEnd finds the index of the "]" that closes the bracket
// expression beginning at runes[0] == '['. A "]" appearing immediately
// after the opening "[", or after a leading "!"/"^", is literal rather
// than a terminator (fnmatch semantics). Returns -1 if unterminated.
func findBracketEnd(runes []rune) int {
	i := 1
	if i < len(runes) && (runes[i] == '!' || runes[i] == '^') {
		i++
	}
	if i < len(runes) && runes[i] == ']' {
		i++
	}
	for ; i < len(runes); i++ {
		if runes[i] == ']' {
			return i
		}
	}
	return -1
}

// writeEscaped writes a single rune to b, backslash-escaping it if it is a
// regexp metacharacter outside of the glob dialect's own special chars.
func writeEscaped(b *strings.Builder, r rune) {
	if strings.ContainsRune(`\.+()^$|{}/`, r) {
		b.WriteRune('\\')
	}
	b.WriteRune(r)
}

// hasUnterminatedBracket reports whether s contains a "[" with no matching
// "]" found via the same scanning rule as translateBracket/findBracketEnd.
func hasUnterminatedBracket(s string) bool {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '[' {
			end := findBracketEnd(runes[i:])
			if end < 0 {
				return true
			}
			// Skip past this bracket expression so chars inside it aren't
			// mistaken for the start of another.
			i += end
		}
	}
	return false
}

// containsGlobMeta reports whether s has any glob metacharacter in it.
func containsGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// splitGlobComponents splits a pattern on "/", except for "/" characters
// that occur inside a bracket expression ("[a.b/c]" is one component, a
// class matching any of a, ., b, /, or c).
func splitGlobComponents(pattern string) []string {
	runes := []rune(pattern)
	var comps []string
	var cur strings.Builder
	for i := 0; i < len(runes); {
		switch runes[i] {
		case '[':
			end := findBracketEnd(runes[i:])
			if end < 0 {
				cur.WriteRune('[')
				i++
				continue
			}
			cur.WriteString(string(runes[i : i+end+1]))
			i += end + 1
		case '/':
			comps = append(comps, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteRune(runes[i])
			i++
		}
	}
	comps = append(comps, cur.String())
	return comps
}
