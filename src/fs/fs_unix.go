//go:build !windows

package fs

import (
	"fmt"
	"os"
	"syscall"
)

// IsSameFile returns true if two filenames describe the same underlying file
// (i.e. device and inode).
func IsSameFile(a, b string) bool {
	da, ia, erra := DeviceInode(a)
	db, ib, errb := DeviceInode(b)
	return erra == nil && errb == nil && da == db && ia == ib
}

// DeviceInode returns the device and inode numbers of a path, following
// symlinks. It is used both for other-filesystem detection (comparing a
// directory's device against the root's) and for cycle protection when a
// followed symlink might lead back to an ancestor.
func DeviceInode(filename string) (dev uint64, ino uint64, err error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return 0, 0, err
	}
	s, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, fmt.Errorf("fs: not a syscall.Stat_t: %s", filename)
	}
	return uint64(s.Dev), s.Ino, nil
}
