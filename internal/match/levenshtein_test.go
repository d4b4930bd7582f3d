package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"Foo", "Foo", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive
		{"Hello", "hello", 1},

		// Type name examples
		{"Strng", "String", 1},
		{"Optinal", "Optional", 1},
		{"Dictionary", "Dict", 6},

		// Multi-byte runes count once
		{"Café", "Cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 0.0001)
	assert.InDelta(t, 1.0, Similarity("Foo", "Foo"), 0.0001)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 0.0001)
	assert.InDelta(t, 1.0-3.0/7.0, Similarity("kitten", "sitting"), 0.0001)
}

func TestIdentSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, IdentSimilarity("HTTPClient", "http_client"), 0.0001)
	assert.InDelta(t, 1.0, IdentSimilarity("Result<Int>?", "Result"), 0.0001)
	assert.Greater(t, IdentSimilarity("Strng", "String"), 0.8)
}

func BenchmarkLevenshtein(b *testing.B) {
	for b.Loop() {
		Levenshtein("AssociatedValue", "AssociatedValues")
	}
}
