package selection

import (
	"fmt"
	"io"

	"github.com/muff1nman/duplicity/src/cli/logging"
	"github.com/muff1nman/duplicity/src/fs/glob"
	"github.com/muff1nman/duplicity/src/outcome"
	"github.com/muff1nman/duplicity/src/selpath"
)

var log = logging.Log

// ArgKind identifies the kind of a single ordered selection directive.
type ArgKind int

// The recognised directive kinds. Glob and Regexp carry a pattern/Include
// sign; Filelist reads an external file of further glob directives (its
// own Include is the file's default polarity); the remaining three are the
// auxiliary gates, which take no pattern.
const (
	ArgGlob ArgKind = iota
	ArgRegexp
	ArgFilelist
	ArgOtherFilesystems
	ArgDeviceFiles
	ArgExcludeIfPresent
)

// Arg is one selection directive in the order it was given on the command
// line (filelist contents are expanded in place when the chain is built,
// preserving the position of the --include-filelist/--exclude-filelist
// flag that named them).
type Arg struct {
	Kind          ArgKind
	Include       bool
	Value         string // pattern, regex, filelist path, or exclude-if-present marker name
	NullSeparator bool   // only meaningful for ArgFilelist
	Reader        func() (io.ReadCloser, error)
}

// RuleChain is an ordered sequence of selection functions. The first one
// to return a non-DontCare outcome for a Path decides it.
type RuleChain struct {
	rules []outcome.SF
}

// Eval runs p through the chain and returns the first non-DontCare result.
func (rc *RuleChain) Eval(p selpath.Path) outcome.Outcome {
	for _, r := range rc.rules {
		if o := r(p); o != outcome.DontCare {
			return o
		}
	}
	return outcome.DontCare
}

// Build compiles an ordered list of directives, relative to root, into a
// RuleChain. It appends the implicit terminal rule: a universal exclude if
// the last explicit rule was an include, or a universal include if the
// last explicit rule was an exclude (or there were no explicit rules at
// all, matching duplicity's "include everything by default" behaviour).
func Build(root string, args []Arg) (*RuleChain, error) {
	var rules []outcome.SF
	lastInclude := false
	sawRule := false

	for _, a := range args {
		switch a.Kind {
		case ArgGlob:
			sf, err := glob.Compile(root, a.Value, a.Include)
			if err != nil {
				return nil, err
			}
			rules = append(rules, sf)
			lastInclude, sawRule = a.Include, true

		case ArgRegexp:
			sf, err := RegexpSF(a.Value, a.Include)
			if err != nil {
				return nil, err
			}
			rules = append(rules, sf)
			lastInclude, sawRule = a.Include, true

		case ArgFilelist:
			if a.Reader == nil {
				return nil, fmt.Errorf("selection: filelist directive %q has no reader", a.Value)
			}
			f, err := a.Reader()
			if err != nil {
				return nil, err
			}
			directives, err := ParseFilelist(f, a.Include, a.NullSeparator)
			cerr := f.Close()
			if err != nil {
				return nil, err
			}
			if cerr != nil {
				return nil, cerr
			}
			log.Debug("Expanded filelist %s into %d rules", a.Value, len(directives))
			for _, d := range directives {
				sf, err := glob.Compile(root, d.Pattern, d.Include)
				if err != nil {
					return nil, err
				}
				rules = append(rules, sf)
				lastInclude, sawRule = d.Include, true
			}

		case ArgOtherFilesystems:
			sf, err := OtherFilesystemsSF(root)
			if err != nil {
				return nil, err
			}
			rules = append(rules, sf)

		case ArgDeviceFiles:
			rules = append(rules, DeviceFilesSF())

		case ArgExcludeIfPresent:
			rules = append(rules, ExcludeIfPresentSF(a.Value))

		default:
			return nil, fmt.Errorf("selection: unknown directive kind %d", a.Kind)
		}
	}

	terminalInclude := true
	if sawRule && lastInclude {
		terminalInclude = false
	}
	log.Notice("Built rule chain of %d rules for %s, implicit terminal rule is include=%v", len(rules), root, terminalInclude)
	rules = append(rules, universalSF(terminalInclude))

	return &RuleChain{rules: rules}, nil
}

func universalSF(include bool) outcome.SF {
	o := outcome.Exclude
	if include {
		o = outcome.Include
	}
	return func(selpath.Path) outcome.Outcome { return o }
}
