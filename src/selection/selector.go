package selection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/karrick/godirwalk"

	"github.com/muff1nman/duplicity/src/fs"
	"github.com/muff1nman/duplicity/src/outcome"
	"github.com/muff1nman/duplicity/src/selpath"
)

// Result is one value pulled from a Selector's walk: a selected Path, or an
// error encountered while trying to produce one.
type Result struct {
	Path selpath.Path
	Err  error
}

// Selector drives a depth-first walk of a backup root, evaluating a
// RuleChain at every visited path and emitting the ones that survive it.
type Selector struct {
	root  string
	chain *RuleChain
	errs  *multierror.Error
}

// NewSelector builds a Selector over root using chain. chain must have been
// built against the same root (see Build).
func NewSelector(root string, chain *RuleChain) *Selector {
	return &Selector{root: root, chain: chain}
}

// Walk starts the traversal and returns a channel of Results in ancestor-
// before-descendant, lexicographic-sibling order. The channel is closed
// when the walk completes, fails, or ctx is cancelled; cancellation is
// checked at every emission and before every directory read. Individual
// path errors are reported on the channel and also accumulated; once the
// channel is drained, Err returns all of them together.
func (s *Selector) Walk(ctx context.Context) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		seen := map[dirKey]bool{}
		root := rootPath(s.root)
		s.walk(ctx, out, root, seen)
	}()
	return out
}

// Err returns every per-path error encountered during the most recent Walk,
// combined with hashicorp/go-multierror. It should only be read after the
// channel returned by Walk has been drained (the walk goroutine has exited).
func (s *Selector) Err() error {
	return s.errs.ErrorOrNil()
}

func (s *Selector) record(path string, err error) {
	log.Warning("Skipping %s: %s", path, err)
	s.errs = multierror.Append(s.errs, fmt.Errorf("%s: %w", path, err))
}

type dirKey struct {
	dev, ino uint64
}

func rootPath(root string) selpath.Path {
	p := selpath.Root(root)
	if kind, dev, ino, err := statPath(root); err == nil {
		p = p.WithKind(kind).WithDeviceInode(dev, ino)
	}
	return p
}

func statPath(path string) (selpath.Kind, uint64, uint64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return selpath.Unknown, 0, 0, err
	}
	dev, ino, _ := fs.DeviceInode(path)
	return kindOf(info), dev, ino, nil
}

func kindOf(info os.FileInfo) selpath.Kind {
	switch {
	case info.IsDir():
		return selpath.Directory
	case info.Mode()&os.ModeSymlink != 0:
		return selpath.Symlink
	case info.Mode()&os.ModeNamedPipe != 0:
		return selpath.Fifo
	case info.Mode()&os.ModeSocket != 0:
		return selpath.Socket
	case info.Mode()&os.ModeDevice != 0:
		if info.Mode()&os.ModeCharDevice != 0 {
			return selpath.CharDevice
		}
		return selpath.BlockDevice
	default:
		return selpath.Regular
	}
}

func (s *Selector) walk(ctx context.Context, out chan<- Result, p selpath.Path, seen map[dirKey]bool) bool {
	if ctx.Err() != nil {
		return false
	}

	o := s.chain.Eval(p)
	if o == outcome.DontCare {
		o = outcome.Include
	}

	switch o {
	case outcome.Exclude:
		return true
	case outcome.Include, outcome.PartialInclude:
		// A PartialInclude directory is emitted as well, so that anything
		// emitted beneath it has its whole ancestor chain ahead of it.
		if o == outcome.Include || p.Kind == selpath.Directory {
			select {
			case out <- Result{Path: p}:
			case <-ctx.Done():
				return false
			}
		}
		if p.Kind != selpath.Directory {
			return true
		}
		return s.descend(ctx, out, p, seen)
	}
	return true
}

func (s *Selector) descend(ctx context.Context, out chan<- Result, p selpath.Path, seen map[dirKey]bool) bool {
	// A zero device/inode means fs.DeviceInode could not report one; such a
	// directory gets no cycle check.
	key := dirKey{p.Device, p.Inode}
	if key != (dirKey{}) {
		if seen[key] {
			return true
		}
		seen[key] = true
		defer delete(seen, key)
	}

	if ctx.Err() != nil {
		return false
	}

	names, err := readSortedDir(p.String())
	if err != nil {
		s.record(p.String(), err)
		select {
		case out <- Result{Path: p, Err: err}:
		case <-ctx.Done():
			return false
		}
		return true
	}

	for _, name := range names {
		childPath := filepath.Join(p.String(), name)
		kind, dev, ino, err := statPath(childPath)
		if err != nil {
			s.record(childPath, err)
			select {
			case out <- Result{Err: err}:
			case <-ctx.Done():
				return false
			}
			continue
		}
		child := p.Child(name).WithKind(kind).WithDeviceInode(dev, ino)
		if !s.walk(ctx, out, child, seen) {
			return false
		}
	}
	return true
}

// readSortedDir lists a directory's entries in byte-lexicographic order.
// It reads lazily through godirwalk's Scanner rather than materialising a
// full []os.FileInfo, then sorts the names to give the deterministic sibling
// order the walk depends on.
func readSortedDir(dirname string) ([]string, error) {
	scanner, err := godirwalk.NewScanner(dirname)
	if err != nil {
		return nil, err
	}
	var names []string
	for scanner.Scan() {
		dirent, err := scanner.Dirent()
		if err != nil {
			return nil, err
		}
		names = append(names, dirent.Name())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
