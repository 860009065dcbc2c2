// Command dupligo exposes the selection engine as a standalone tool: given
// a backup root and an ordered list of selection directives, it prints
// every Path the RuleChain would hand to the backup pipeline.
//
// Flag handling is split in two. The global flags (--verbosity, --log-file,
// --timeout, --null-separator) carry no ordering requirement, so they're
// parsed the way the rest of this codebase parses flags: through
// cli.ParseFlags, backed by go-flags. The selection directives
// (--include, --exclude, --include-filelist and friends) are different -
// their relative order is semantically significant (see selection.Build) -
// so they're pulled out of argv by a small hand-rolled left-to-right scan
// before the remainder ever reaches go-flags.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muff1nman/duplicity/src/cli"
	"github.com/muff1nman/duplicity/src/fs"
	"github.com/muff1nman/duplicity/src/selection"
)

type options struct {
	Root          string
	NullSeparator bool
	Verbosity     string
	LogFile       string
	Timeout       string
	Args          []selection.Arg
}

// globalOptions is the struct cli.ParseFlags fills in from whatever argv
// tokens parseArgs didn't recognise as selection directives.
type globalOptions struct {
	NullSeparator bool   `long:"null-separator" description:"Filelist entries are separated by NUL bytes rather than newlines."`
	Verbosity     string `long:"verbosity" description:"Logging verbosity: a level name, a v/vv/vvv shorthand, or a 0-4 integer."`
	LogFile       string `long:"log-file" description:"Additionally echo logging output to this file."`
	Timeout       string `long:"timeout" description:"Abort the walk if it hasn't finished within this duration."`
}

// flagSpec describes one recognised ordered selection flag.
type flagSpec struct {
	long     string
	kind     selection.ArgKind
	include  bool
	takesArg bool
}

var orderedFlags = []flagSpec{
	{"--include", selection.ArgGlob, true, true},
	{"--exclude", selection.ArgGlob, false, true},
	{"--include-regexp", selection.ArgRegexp, true, true},
	{"--exclude-regexp", selection.ArgRegexp, false, true},
	{"--include-filelist", selection.ArgFilelist, true, true},
	{"--exclude-filelist", selection.ArgFilelist, false, true},
	{"--exclude-other-filesystems", selection.ArgOtherFilesystems, false, false},
	{"--exclude-device-files", selection.ArgDeviceFiles, false, false},
	{"--exclude-if-present", selection.ArgExcludeIfPresent, false, true},
}

func lookupFlag(name string) (flagSpec, bool) {
	for _, f := range orderedFlags {
		if f.long == name {
			return f, true
		}
	}
	return flagSpec{}, false
}

// parseArgs scans argv left to right, peeling off the ordered selection
// directives into opts.Args (in the exact sequence they were given) and
// handing everything else - global flags plus the positional backup root -
// to cli.ParseFlags.
func parseArgs(argv []string) (options, error) {
	var opts options
	var rest []string

	// A provisional NullSeparator, tracked as directives are scanned, since
	// a filelist directive needs to know its separator at the point it's
	// turned into an Arg. The final value (after go-flags parses rest) wins
	// for the summary opts.NullSeparator, but both are always in sync
	// because --null-separator is a boolean global flag with one value for
	// the whole run.
	nullSeparator := hasNullSeparator(argv)

	for i := 0; i < len(argv); i++ {
		a := argv[i]
		name, value, hasValue := splitFlag(a)

		if spec, ok := lookupFlag(name); ok {
			var v string
			if spec.takesArg {
				var err error
				v, err = nextValue(argv, &i, value, hasValue, name)
				if err != nil {
					return opts, err
				}
			}
			opts.Args = append(opts.Args, toArg(spec, v, nullSeparator))
			continue
		}

		rest = append(rest, a)
	}

	var g globalOptions
	_, extra, err := cli.ParseFlags("dupligo", &g, append([]string{"dupligo"}, rest...))
	if err != nil {
		return opts, err
	}
	if len(extra) == 0 {
		return opts, fmt.Errorf("dupligo: a backup root is required")
	}

	opts.Root = extra[0]
	opts.NullSeparator = g.NullSeparator
	opts.Verbosity = g.Verbosity
	opts.LogFile = g.LogFile
	opts.Timeout = g.Timeout
	return opts, nil
}

// hasNullSeparator checks argv for --null-separator ahead of the main scan,
// since a filelist directive earlier in argv still needs to honour a
// --null-separator given later.
func hasNullSeparator(argv []string) bool {
	for _, a := range argv {
		name, _, _ := splitFlag(a)
		if name == "--null-separator" {
			return true
		}
	}
	return false
}

func splitFlag(a string) (name, value string, hasValue bool) {
	if i := strings.IndexByte(a, '='); i >= 0 && strings.HasPrefix(a, "--") {
		return a[:i], a[i+1:], true
	}
	return a, "", false
}

func nextValue(argv []string, i *int, value string, hasValue bool, name string) (string, error) {
	if hasValue {
		return value, nil
	}
	if *i+1 >= len(argv) {
		return "", fmt.Errorf("dupligo: %s requires an argument", name)
	}
	*i++
	return argv[*i], nil
}

func toArg(spec flagSpec, value string, nullSeparator bool) selection.Arg {
	a := selection.Arg{Kind: spec.kind, Include: spec.include, Value: value}
	if spec.kind == selection.ArgFilelist {
		a.NullSeparator = nullSeparator
		path := value
		a.Reader = func() (io.ReadCloser, error) {
			return fs.HostFS.Open(path)
		}
	}
	return a
}
