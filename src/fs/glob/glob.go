// Package glob compiles shell-glob selection patterns into selection
// functions. A pattern is either entirely literal (no "*", "?" or "["
// anywhere), in which case it matches by structural prefix comparison, or
// it contains wildcards, in which case it is compiled into a sequence of
// per-component matchers that are walked against a candidate's index.
//
// The two cases behave differently for ancestors of a match: a literal
// pattern's descendants inherit the pattern's own outcome in full, and so
// do its ancestors when the sign is Include (an Exclude pattern leaves its
// ancestors DontCare), while a wildcard pattern's ancestors only ever
// produce PartialInclude, and only when the pattern's sign is Include.
package glob

import (
	"regexp"
	"strings"

	"github.com/muff1nman/duplicity/src/outcome"
	"github.com/muff1nman/duplicity/src/selpath"
)

const ignoreCasePrefix = "ignorecase:"

// IsGlob reports whether pattern contains a shell-glob metacharacter.
func IsGlob(pattern string) bool {
	return containsGlobMeta(pattern)
}

// Compile turns a single selection pattern into a selection function. root
// is the absolute backup root; pattern is matched against paths relative to
// it. include selects the outcome produced on a match (Include or Exclude).
func Compile(root, rawPattern string, include bool) (outcome.SF, error) {
	ignoreCase := false
	pattern := rawPattern
	if strings.HasPrefix(pattern, ignoreCasePrefix) {
		ignoreCase = true
		pattern = pattern[len(ignoreCasePrefix):]
	}
	pattern = strings.TrimSuffix(pattern, "/")

	rootComps := trimmedComponents(root)
	patternComps := splitGlobComponents(strings.Trim(pattern, "/"))
	if pattern == "" {
		patternComps = nil
	}

	for _, c := range patternComps {
		if c == "" {
			return nil, GlobbingError{Pattern: rawPattern, Reason: "empty path segment"}
		}
		if hasUnterminatedBracket(c) {
			return nil, GlobbingError{Pattern: rawPattern, Reason: "unterminated [ in " + c}
		}
	}

	headLen := len(patternComps)
	for i, c := range patternComps {
		if containsGlobMeta(c) {
			headLen = i
			break
		}
	}

	// A pattern with no literal head at all (it starts right off with a
	// wildcard, e.g. "**" or "**.py") makes no claim about being rooted:
	// it is matched directly against a candidate's relative index. Any
	// other pattern must spell out root in full before it may introduce a
	// wildcard; a literal head that stops partway through root (matching
	// so far, but not far enough) is rejected rather than silently
	// truncated.
	var relComps []string
	if headLen > 0 {
		if headLen < len(rootComps) {
			return nil, FilePrefixError{Pattern: rawPattern, Root: root}
		}
		for i := range rootComps {
			if !componentsEqual(rootComps[i], patternComps[i], ignoreCase) {
				return nil, FilePrefixError{Pattern: rawPattern, Root: root}
			}
		}
		relComps = patternComps[len(rootComps):]
	} else {
		relComps = patternComps
	}

	sign := outcome.Exclude
	if include {
		sign = outcome.Include
	}

	relHasGlob := false
	for _, c := range relComps {
		if containsGlobMeta(c) {
			relHasGlob = true
			break
		}
	}

	if !relHasGlob {
		return literalSF(relComps, sign, ignoreCase), nil
	}

	parts := buildParts(relComps, ignoreCase)
	return wildcardSF(parts, sign), nil
}

func trimmedComponents(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func componentsEqual(a, b string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// literalSF builds a selection function for a pattern with no wildcards at
// all: it matches any candidate whose index shares a component-wise prefix
// relationship with relComps in either direction (candidate is an ancestor,
// exact match, or descendant of the pattern).
func literalSF(relComps []string, sign outcome.Outcome, ignoreCase bool) outcome.SF {
	return func(p selpath.Path) outcome.Outcome {
		common := len(relComps)
		ancestor := len(p.Index) < common
		if ancestor {
			common = len(p.Index)
		}
		for i := 0; i < common; i++ {
			if !componentsEqual(relComps[i], p.Index[i], ignoreCase) {
				return outcome.DontCare
			}
		}
		// A proper ancestor of the rule's target isn't itself selected by
		// an exclude rule - only an include rule may pull an ancestor
		// directory in on the strength of something beneath it.
		if ancestor && sign != outcome.Include {
			return outcome.DontCare
		}
		return sign
	}
}

// wildcardSF builds a selection function for a pattern containing
// wildcards. A candidate matches in full if it, or any of its ancestors,
// fully matches parts; otherwise it is PartialInclude (Include sign only)
// if its own index is a viable, not-yet-complete match.
func wildcardSF(parts []*globPart, sign outcome.Outcome) outcome.SF {
	return func(p selpath.Path) outcome.Outcome {
		index := p.Index
		for k := 0; k <= len(index); k++ {
			if full, _ := matchParts(parts, index[:k]); full {
				return sign
			}
		}
		if sign == outcome.Include {
			if _, partial := matchParts(parts, index); partial {
				return outcome.PartialInclude
			}
		}
		return outcome.DontCare
	}
}

// globPart is one element of a compiled wildcard pattern.
type globPart struct {
	literal      string
	regex        *regexp.Regexp
	isDoubleStar bool
}

func (part *globPart) match(name string) bool {
	if part.isDoubleStar {
		return true
	}
	if part.regex != nil {
		return part.regex.MatchString(name)
	}
	return part.literal == name
}

// buildParts expands a "/"-delimited component list into matcher parts,
// promoting a leading "**" (possibly with a literal tail, as in "**.py")
// into its own double-star part so it can consume any number of path
// components independent of where it appeared in the original pattern.
func buildParts(comps []string, ignoreCase bool) []*globPart {
	var parts []*globPart
	for _, c := range comps {
		if c == "**" {
			parts = append(parts, &globPart{isDoubleStar: true})
			continue
		}
		if strings.HasPrefix(c, "**") {
			parts = append(parts, &globPart{isDoubleStar: true})
			parts = append(parts, compileGlobPart("*"+strings.TrimPrefix(c, "**"), ignoreCase))
			continue
		}
		parts = append(parts, compileGlobPart(c, ignoreCase))
	}
	return parts
}

func compileGlobPart(c string, ignoreCase bool) *globPart {
	if !containsGlobMeta(c) {
		if ignoreCase {
			return &globPart{regex: regexp.MustCompile("(?i)^" + toComponentRegex(c) + "$")}
		}
		return &globPart{literal: c}
	}
	re := "^" + toComponentRegex(c) + "$"
	if ignoreCase {
		re = "(?i)" + re
	}
	return &globPart{regex: regexp.MustCompile(re)}
}

// canMatchEmpty reports whether parts could be satisfied by zero further
// path components, i.e. every remaining part is a double star.
func canMatchEmpty(parts []*globPart) bool {
	for _, p := range parts {
		if !p.isDoubleStar {
			return false
		}
	}
	return true
}

// matchParts walks index against parts. full reports whether parts is
// satisfied exactly by index (nothing left on either side); partial
// reports whether some longer index, extending this one, could still
// satisfy parts (relevant when index runs out before parts does).
func matchParts(parts []*globPart, index []string) (full, partial bool) {
	if len(parts) == 0 {
		return len(index) == 0, false
	}
	if len(index) == 0 {
		if canMatchEmpty(parts) {
			return true, false
		}
		return false, true
	}
	part := parts[0]
	name := index[0]
	if part.isDoubleStar {
		// The double star can consume this component and remain active
		// for the rest of index, or consume nothing and hand off to the
		// next part against the unconsumed index.
		fullA, partialA := matchParts(parts, index[1:])
		fullB, partialB := matchParts(parts[1:], index)
		return fullA || fullB, partialA || partialB
	}
	if !part.match(name) {
		return false, false
	}
	return matchParts(parts[1:], index[1:])
}
