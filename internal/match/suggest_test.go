package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidates(t *testing.T) {
	ranked := RankCandidates("Strng", []string{"Int", "String", "Foo.Strings"})
	require.Len(t, ranked, 3)

	assert.Equal(t, "String", ranked[0].Identity)
	assert.Equal(t, "Foo.Strings", ranked[1].Identity)
	assert.Equal(t, "Int", ranked[2].Identity)
}

func TestRankCandidates_TiesKeepInputOrder(t *testing.T) {
	ranked := RankCandidates("Bar", []string{"A.Bar", "B.Bar"})
	require.Len(t, ranked, 2)

	assert.Equal(t, "A.Bar", ranked[0].Identity)
	assert.Equal(t, "B.Bar", ranked[1].Identity)
}

func TestSuggest(t *testing.T) {
	known := []string{"Foo", "Bar", "Foo.Inner"}

	assert.Equal(t, []string{"Foo"}, Suggest("Fo", known, 3))
	assert.Empty(t, Suggest("Zzzzzz", known, 3))
	assert.Nil(t, Suggest("Fo", known, 0))
}

func TestSuggest_ExcludesExactMatch(t *testing.T) {
	assert.Equal(t, []string{"Foos"}, Suggest("Foo", []string{"Foo", "Foos"}, 2))
}
