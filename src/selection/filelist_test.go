package selection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilelistDefaultPolarity(t *testing.T) {
	text := "testfiles/select/1/2/1\n# a comment\n\n  \ntestfiles/select/1\n"
	directives, err := ParseFilelist(strings.NewReader(text), false, false)
	require.NoError(t, err)
	require.Len(t, directives, 2)
	assert.Equal(t, Directive{Pattern: "testfiles/select/1/2/1", Include: false}, directives[0])
	assert.Equal(t, Directive{Pattern: "testfiles/select/1", Include: false}, directives[1])
}

func TestParseFilelistSignOverride(t *testing.T) {
	text := "+ testfiles/select/1/2/1\n- testfiles/select/1/2\ntestfiles/select/1\n- **\n"
	directives, err := ParseFilelist(strings.NewReader(text), true, false)
	require.NoError(t, err)
	require.Len(t, directives, 4)
	assert.Equal(t, Directive{Pattern: "testfiles/select/1/2/1", Include: true}, directives[0])
	assert.Equal(t, Directive{Pattern: "testfiles/select/1/2", Include: false}, directives[1])
	assert.Equal(t, Directive{Pattern: "testfiles/select/1", Include: true}, directives[2])
	assert.Equal(t, Directive{Pattern: "**", Include: false}, directives[3])
}

func TestParseFilelistQuotedPattern(t *testing.T) {
	text := `"  leading and trailing space  "` + "\n" + `'- not a sign override'` + "\n"
	directives, err := ParseFilelist(strings.NewReader(text), true, false)
	require.NoError(t, err)
	require.Len(t, directives, 2)
	assert.Equal(t, "  leading and trailing space  ", directives[0].Pattern)
	assert.Equal(t, "- not a sign override", directives[1].Pattern)
}

func TestParseFilelistNullSeparated(t *testing.T) {
	text := "\x00- testfiles/select/1/1/1\x00testfiles/select/1/1\x00- testfiles/select/1\x00- **\x00"
	directives, err := ParseFilelist(strings.NewReader(text), true, true)
	require.NoError(t, err)
	require.Len(t, directives, 4)
	assert.Equal(t, Directive{Pattern: "testfiles/select/1/1/1", Include: false}, directives[0])
	assert.Equal(t, Directive{Pattern: "testfiles/select/1/1", Include: true}, directives[1])
	assert.Equal(t, Directive{Pattern: "testfiles/select/1", Include: false}, directives[2])
	assert.Equal(t, Directive{Pattern: "**", Include: false}, directives[3])
}

func TestParseFilelistNullSeparatedKeepsWhitespaceAndHash(t *testing.T) {
	text := "\x00  # not a comment, verbatim  \x00"
	directives, err := ParseFilelist(strings.NewReader(text), true, true)
	require.NoError(t, err)
	require.Len(t, directives, 1)
	assert.Equal(t, "  # not a comment, verbatim  ", directives[0].Pattern)
}
