package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muff1nman/duplicity/src/selection"
)

func TestParseArgsOrdersDirectives(t *testing.T) {
	opts, err := parseArgs([]string{
		"--exclude", "**/*.o",
		"--include", "src",
		"--exclude", "**",
		"/backup/root",
	})
	require.NoError(t, err)
	assert.Equal(t, "/backup/root", opts.Root)
	require.Len(t, opts.Args, 3)
	assert.Equal(t, selection.ArgGlob, opts.Args[0].Kind)
	assert.False(t, opts.Args[0].Include)
	assert.Equal(t, "**/*.o", opts.Args[0].Value)
	assert.True(t, opts.Args[1].Include)
	assert.Equal(t, "src", opts.Args[1].Value)
	assert.False(t, opts.Args[2].Include)
	assert.Equal(t, "**", opts.Args[2].Value)
}

func TestParseArgsGlobalFlags(t *testing.T) {
	opts, err := parseArgs([]string{
		"--verbosity", "debug",
		"--timeout=30s",
		"--null-separator",
		"/backup/root",
	})
	require.NoError(t, err)
	assert.Equal(t, "/backup/root", opts.Root)
	assert.Equal(t, "debug", opts.Verbosity)
	assert.Equal(t, "30s", opts.Timeout)
	assert.True(t, opts.NullSeparator)
}

func TestParseArgsFilelistHonoursNullSeparator(t *testing.T) {
	opts, err := parseArgs([]string{
		"--null-separator",
		"--include-filelist", "/tmp/list",
		"/backup/root",
	})
	require.NoError(t, err)
	require.Len(t, opts.Args, 1)
	assert.True(t, opts.Args[0].NullSeparator)
}

func TestParseArgsMissingRoot(t *testing.T) {
	_, err := parseArgs([]string{"--exclude", "**"})
	assert.Error(t, err)
}

func TestParseArgsUnknownFlag(t *testing.T) {
	_, err := parseArgs([]string{"--not-a-flag", "/backup/root"})
	assert.Error(t, err)
}
