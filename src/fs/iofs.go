package fs

import (
	iofs "io/fs"
	"os"
)

type osFS struct{}

func (osFS) ReadDir(name string) ([]iofs.DirEntry, error) {
	return os.ReadDir(name)
}

func (osFS) Open(name string) (iofs.File, error) {
	return os.Open(name)
}

// HostFS is the io/fs.FS the selection system reads filelists through
// (--include-filelist/--exclude-filelist): it behaves the same as the host
// OS, i.e. the same way os.Open works, but gives the CLI driver an
// interface it could swap out in tests instead of calling os.Open directly.
var HostFS = osFS{}
