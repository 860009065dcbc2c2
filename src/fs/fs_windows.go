//go:build windows

package fs

import "os"

// IsSameFile returns true if two filenames describe the same underlying file.
func IsSameFile(a, b string) bool {
	// TODO(jpoole): compare the equivalent of inodes on NTFS
	return a == b
}

// DeviceInode is not meaningful on Windows; it always reports failure. The
// Selector then walks without cycle protection, and OtherFilesystemsSF
// returns this error.
func DeviceInode(filename string) (dev uint64, ino uint64, err error) {
	if _, err := os.Stat(filename); err != nil {
		return 0, 0, err
	}
	return 0, 0, &unsupportedError{}
}

type unsupportedError struct{}

func (*unsupportedError) Error() string { return "fs: device/inode not supported on windows" }
