package selpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootIsRoot(t *testing.T) {
	r := Root("/backup")
	assert.True(t, r.IsRoot())
	assert.Equal(t, "/backup", r.String())
}

func TestChildAppendsComponent(t *testing.T) {
	r := Root("/backup")
	c := r.Child("a").Child("b")
	assert.Equal(t, []string{"a", "b"}, c.Index)
	assert.Equal(t, "/backup/a/b", c.String())
	assert.False(t, c.IsRoot())
}

func TestChildDoesNotAliasParentIndex(t *testing.T) {
	r := Root("/backup")
	a := r.Child("a")
	b := a.Child("b")
	c := a.Child("c")
	assert.Equal(t, []string{"a", "b"}, b.Index)
	assert.Equal(t, []string{"a", "c"}, c.Index)
}

func TestParent(t *testing.T) {
	r := Root("/backup")
	c := r.Child("a").Child("b")
	assert.Equal(t, r.Child("a").Index, c.Parent().Index)
}

func TestParentOfRootPanics(t *testing.T) {
	assert.Panics(t, func() { Root("/backup").Parent() })
}

func TestPrefixes(t *testing.T) {
	p := Root("/backup").Child("a").Child("b").Child("c")
	prefixes := p.Prefixes()
	assert.Len(t, prefixes, 4)
	assert.Equal(t, []string(nil), prefixes[0].Index)
	assert.Equal(t, []string{"a"}, prefixes[1].Index)
	assert.Equal(t, []string{"a", "b"}, prefixes[2].Index)
	assert.Equal(t, []string{"a", "b", "c"}, prefixes[3].Index)
}

func TestName(t *testing.T) {
	assert.Equal(t, "", Root("/backup").Name())
	assert.Equal(t, "b", Root("/backup").Child("a").Child("b").Name())
}
