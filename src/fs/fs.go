// Package fs provides filesystem helpers used by the selection walker:
// existence/type checks and, per-platform, the device/inode pair a path
// resolves to.
package fs

import (
	"os"
)

// PathExists returns true if the given path exists, as a file or a directory.
func PathExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// FileExists returns true if the given path exists and is not a directory.
func FileExists(filename string) bool {
	info, err := os.Lstat(filename)
	return err == nil && !info.IsDir()
}

// IsSymlink returns true if the given path exists and is a symlink.
func IsSymlink(filename string) bool {
	info, err := os.Lstat(filename)
	return err == nil && (info.Mode()&os.ModeSymlink) != 0
}

// IsDirectory checks if a given path is a directory. Unlike IsSymlink this
// follows symlinks, matching os.Stat semantics.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
