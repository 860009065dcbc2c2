package selection

import (
	"go.elara.ws/pcre"

	"github.com/muff1nman/duplicity/src/fs"
	"github.com/muff1nman/duplicity/src/outcome"
	"github.com/muff1nman/duplicity/src/selpath"
)

// RegexpSF compiles a raw regex rule. It matches unanchored against the
// path's rendered string (Path.String: the base, then the index joined with
// "/"), mirroring a plain substring search: unlike
// a glob rule, a regex rule never produces PartialInclude, so it cannot
// auto-include ancestors of a deeply nested match.
func RegexpSF(pattern string, include bool) (outcome.SF, error) {
	re, err := pcre.CompileOpts(pattern, 0)
	if err != nil {
		return nil, err
	}

	sign := outcome.Exclude
	if include {
		sign = outcome.Include
	}

	return func(p selpath.Path) outcome.Outcome {
		if re.Match([]byte(p.String())) {
			return sign
		}
		return outcome.DontCare
	}, nil
}

// OtherFilesystemsSF excludes anything whose device differs from the
// backup root's, i.e. a separate mounted filesystem reached by descending
// into the root. The root itself is always DontCare.
func OtherFilesystemsSF(root string) (outcome.SF, error) {
	rootDev, _, err := fs.DeviceInode(root)
	if err != nil {
		return nil, err
	}

	return func(p selpath.Path) outcome.Outcome {
		if p.IsRoot() {
			return outcome.DontCare
		}
		if p.Device != rootDev {
			return outcome.Exclude
		}
		return outcome.DontCare
	}, nil
}

// DeviceFilesSF excludes block devices, character devices, fifos and
// sockets - none of these are ordinary data a backup can usefully capture.
func DeviceFilesSF() outcome.SF {
	return func(p selpath.Path) outcome.Outcome {
		switch p.Kind {
		case selpath.BlockDevice, selpath.CharDevice, selpath.Fifo, selpath.Socket:
			return outcome.Exclude
		default:
			return outcome.DontCare
		}
	}
}

// ExcludeIfPresentSF excludes a directory that directly contains a file
// named marker. Only directories the walker would otherwise descend into
// are checked; the marker file itself is never evaluated as a candidate.
func ExcludeIfPresentSF(marker string) outcome.SF {
	return func(p selpath.Path) outcome.Outcome {
		if p.Kind != selpath.Directory {
			return outcome.DontCare
		}
		if fs.FileExists(p.String() + "/" + marker) {
			return outcome.Exclude
		}
		return outcome.DontCare
	}
}
