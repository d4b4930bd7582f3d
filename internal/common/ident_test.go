package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinIdentity(t *testing.T) {
	assert.Equal(t, "Foo", JoinIdentity("", "Foo"))
	assert.Equal(t, "Foo.Bar", JoinIdentity("Foo", "Bar"))
	assert.Equal(t, "Foo", JoinIdentity("Foo", ""))
	assert.Equal(t, "A.B.C", PathIdentity([]string{"A", "B"}, "C"))
	assert.Equal(t, "C", PathIdentity(nil, "C"))
}

func TestParentIdentityAndLocalName(t *testing.T) {
	assert.Equal(t, "Foo.Bar", ParentIdentity("Foo.Bar.Baz"))
	assert.Equal(t, "", ParentIdentity("Foo"))
	assert.Equal(t, "Baz", LocalName("Foo.Bar.Baz"))
	assert.Equal(t, "Foo", LocalName("Foo"))
}

func TestScopeChain(t *testing.T) {
	assert.Equal(t, []string{"A.B", "A", ""}, ScopeChain("A.B"))
	assert.Equal(t, []string{""}, ScopeChain(""))
}

func TestAppendUnique(t *testing.T) {
	got := AppendUnique([]string{"A", "B"}, "B", "C", "A", "C")
	assert.Equal(t, []string{"A", "B", "C"}, got)
}
