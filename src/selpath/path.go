// Package selpath defines the structural value used throughout the selection
// system to refer to a location under a backup root, without reference to
// any particular filesystem call having been made.
package selpath

import (
	"strings"
)

// Kind describes the type of filesystem entry a Path refers to.
// It deliberately has coarser granularity than os.FileMode: the selection
// system only ever needs to distinguish directories (which it recurses
// into) from the handful of leaf kinds the auxiliary gates care about.
type Kind int

// Recognised kinds. Unknown is the zero value and is used for a Path that
// has not yet been stat'd, e.g. one freshly returned by Child.
const (
	Unknown Kind = iota
	Regular
	Directory
	Symlink
	Fifo
	Socket
	BlockDevice
	CharDevice
)

// Path is an ordered sequence of name components relative to Base, plus
// enough metadata to answer the questions the selection system asks of it.
// Two Paths with the same Base and Index refer to the same location; Device,
// Inode and Kind are facts observed about that location at a point in time.
type Path struct {
	Base  string
	Index []string

	Kind   Kind
	Device uint64
	Inode  uint64
}

// Root returns the Path for the backup root itself, i.e. an empty index.
func Root(base string) Path {
	return Path{Base: base, Kind: Directory}
}

// IsRoot reports whether p refers to the backup root.
func (p Path) IsRoot() bool {
	return len(p.Index) == 0
}

// Child returns the Path for a named entry directly under p, which must be
// a directory. The returned Path carries the zero Kind until it is stat'd.
func (p Path) Child(name string) Path {
	index := make([]string, len(p.Index)+1)
	copy(index, p.Index)
	index[len(p.Index)] = name
	return Path{Base: p.Base, Index: index}
}

// WithKind returns a copy of p with Kind (and, for a regular file, no other
// metadata) replaced.
func (p Path) WithKind(k Kind) Path {
	p.Kind = k
	return p
}

// WithDeviceInode returns a copy of p with device/inode metadata attached.
func (p Path) WithDeviceInode(dev, ino uint64) Path {
	p.Device = dev
	p.Inode = ino
	return p
}

// String renders the absolute filesystem path the Path refers to.
func (p Path) String() string {
	if len(p.Index) == 0 {
		return p.Base
	}
	if strings.HasSuffix(p.Base, "/") {
		return p.Base + strings.Join(p.Index, "/")
	}
	return p.Base + "/" + strings.Join(p.Index, "/")
}

// Name returns the final index component, or "" for the root.
func (p Path) Name() string {
	if len(p.Index) == 0 {
		return ""
	}
	return p.Index[len(p.Index)-1]
}

// Parent returns the Path one level up. Calling Parent on the root panics,
// since the root has no parent within the selection system's view.
func (p Path) Parent() Path {
	if p.IsRoot() {
		panic("selpath: Parent called on root Path")
	}
	return Path{Base: p.Base, Index: p.Index[:len(p.Index)-1], Kind: Directory}
}

// Prefixes returns the Path at every depth from the root up to and
// including p itself, shallowest first, so a caller can check every
// ancestor of a candidate as well as the candidate's own index.
func (p Path) Prefixes() []Path {
	out := make([]Path, len(p.Index)+1)
	for i := range out {
		out[i] = Path{Base: p.Base, Index: p.Index[:i]}
	}
	return out
}

// Depth returns the number of components in the index.
func (p Path) Depth() int {
	return len(p.Index)
}
