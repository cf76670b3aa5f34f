package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInput(t *testing.T) {
	assert.Equal(t, []string{"Go engineer"}, SplitText("Go engineer", 100, 10))
	assert.Equal(t, []string{""}, SplitText("", 100, 10))
}

func TestSplitTextCountsRunes(t *testing.T) {
	// 10 runes, 30 bytes.
	text := strings.Repeat("é", 5) + strings.Repeat("ü", 5)
	assert.Equal(t, []string{text}, SplitText(text, 10, 2))

	chunks := SplitText(text, 4, 0)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 4)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitTextBreaksAtWhitespace(t *testing.T) {
	chunks := SplitText("kubernetes golang postgres", 12, 0)
	assert.Equal(t, []string{"kubernetes ", "golang ", "postgres"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	chunks := SplitText("abcdefghij", 4, 2)
	assert.Equal(t, []string{"abcd", "cdef", "efgh", "ghij"}, chunks)
}

func TestSplitTextOverlapNotSmallerThanChunk(t *testing.T) {
	chunks := SplitText("abcdefgh", 4, 4)
	assert.Equal(t, []string{"abcd", "efgh"}, chunks)
}
