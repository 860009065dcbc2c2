package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muff1nman/duplicity/src/fs"
	"github.com/muff1nman/duplicity/src/outcome"
	"github.com/muff1nman/duplicity/src/selpath"
)

func TestRegexpSFIncludeUnanchoredSubstring(t *testing.T) {
	sf, err := RegexpSF(`.*\.py`, true)
	require.NoError(t, err)
	assert.Equal(t, outcome.Include, sf(testExt("1.py")))
	assert.Equal(t, outcome.Include, sf(testExt("usr/foo.py")))
	assert.Equal(t, outcome.DontCare, sf(testExt("1.doc")))
}

func TestRegexpSFExcludeSubstringMatch(t *testing.T) {
	sf, err := RegexpSF("hello", false)
	require.NoError(t, err)
	assert.Equal(t, outcome.Exclude, sf(selpath.Root("hello")))
	assert.Equal(t, outcome.Exclude, sf(selpath.Root("foohello_there")))
	assert.Equal(t, outcome.DontCare, sf(selpath.Root("foo")))
}

func TestOtherFilesystemsSF(t *testing.T) {
	root := t.TempDir()
	sf, err := OtherFilesystemsSF(root)
	require.NoError(t, err)

	dev, _, err := fs.DeviceInode(root)
	require.NoError(t, err)

	assert.Equal(t, outcome.DontCare, sf(selpath.Root(root)))

	sameDevice := selpath.Root(root).Child("child").WithDeviceInode(dev, 1)
	assert.Equal(t, outcome.DontCare, sf(sameDevice))

	otherDevice := selpath.Root(root).Child("mount").WithDeviceInode(dev+1, 1)
	assert.Equal(t, outcome.Exclude, sf(otherDevice))
}

func TestDeviceFilesSF(t *testing.T) {
	sf := DeviceFilesSF()
	assert.Equal(t, outcome.Exclude, sf(testExt("a").WithKind(selpath.BlockDevice)))
	assert.Equal(t, outcome.Exclude, sf(testExt("a").WithKind(selpath.CharDevice)))
	assert.Equal(t, outcome.Exclude, sf(testExt("a").WithKind(selpath.Fifo)))
	assert.Equal(t, outcome.Exclude, sf(testExt("a").WithKind(selpath.Socket)))
	assert.Equal(t, outcome.DontCare, sf(testExt("a").WithKind(selpath.Regular)))
}

func TestExcludeIfPresentSF(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "withmarker"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "withmarker", ".nobackup"), []byte(""), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "without"), 0o755))

	sf := ExcludeIfPresentSF(".nobackup")

	withMarker := selpath.Root(root).Child("withmarker").WithKind(selpath.Directory)
	assert.Equal(t, outcome.Exclude, sf(withMarker))

	without := selpath.Root(root).Child("without").WithKind(selpath.Directory)
	assert.Equal(t, outcome.DontCare, sf(without))

	leaf := selpath.Root(root).Child("afile").WithKind(selpath.Regular)
	assert.Equal(t, outcome.DontCare, sf(leaf))
}
