package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToComponentRegex(t *testing.T) {
	assert.Equal(t, "hello", toComponentRegex("hello"))
	assert.Equal(t, `\.e[^/]ll.*o`, toComponentRegex(".e?ll**o"))
	assert.Equal(t, "[abc]el[^de][^fg]h", toComponentRegex("[abc]el[^de][!fg]h"))
	assert.Equal(t, "[a*b-c]e[^]]", toComponentRegex("[a*b-c]e[!]]"))
}

func TestSplitGlobComponentsKeepsBracketIntact(t *testing.T) {
	assert.Equal(t, []string{"a", "[x/y]", "b"}, splitGlobComponents("a/[x/y]/b"))
}

func TestHasUnterminatedBracket(t *testing.T) {
	assert.True(t, hasUnterminatedBracket("foo["))
	assert.False(t, hasUnterminatedBracket("[abc]"))
	assert.False(t, hasUnterminatedBracket("[!]]"))
}
