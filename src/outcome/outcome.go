// Package outcome defines the result type produced by a selection function
// and the function type itself. It is deliberately tiny and dependency-free
// so that both the glob compiler and the higher-level rule chain can depend
// on it without creating an import cycle between them.
package outcome

import "github.com/muff1nman/duplicity/src/selpath"

// Outcome is what a selection function decides about a single Path.
type Outcome int

const (
	// DontCare means the function has no opinion; the chain falls through
	// to the next rule.
	DontCare Outcome = iota
	// Include means the path should be selected and, if a directory,
	// descended into.
	Include
	// Exclude means the path (and everything under it, if a directory)
	// should be pruned.
	Exclude
	// PartialInclude means a directory might contain included descendants
	// even though it doesn't itself match; it is descended into but not,
	// if a leaf, emitted on the strength of this outcome alone.
	PartialInclude
)

// String implements fmt.Stringer, mostly so test failures are readable.
func (o Outcome) String() string {
	switch o {
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	case PartialInclude:
		return "partial-include"
	default:
		return "dont-care"
	}
}

// SF is a selection function: given a Path, it decides an Outcome for it.
// A chain of SFs is evaluated in order and the first non-DontCare result
// wins.
type SF func(p selpath.Path) Outcome
