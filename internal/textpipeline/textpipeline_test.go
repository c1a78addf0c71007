package textpipeline

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBasic(t *testing.T) {
	p := New(nil)
	tokens := p.Normalize("The Bear's Revenant!")
	// "the" is not a stop word here (none injected), but punctuation and
	// the apostrophe must still be stripped before stemming.
	assert.NotContains(t, strings.Join(tokens, " "), "'")
	assert.NotContains(t, strings.Join(tokens, " "), "!")
}

func TestNormalizeStripsU2019(t *testing.T) {
	p := New(nil)
	tokens := p.Normalize("it’s alive")
	for _, tok := range tokens {
		assert.NotContains(t, tok, "’")
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	p := New(nil)
	a := p.Normalize("bear   attack\tscene")
	b := p.Normalize("bear attack scene")
	assert.Equal(t, b, a)
}

func TestNormalizeRemovesStopWords(t *testing.T) {
	p := New([]string{"the", "a", "an"})
	tokens := p.Normalize("the bear attacked a man")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "a")
}

func TestNormalizeEmptyReturnsEmptyNotNil(t *testing.T) {
	p := New(nil)
	tokens := p.Normalize("")
	require.NotNil(t, tokens)
	assert.Empty(t, tokens)
}

func TestNormalizeIdempotent(t *testing.T) {
	p := New([]string{"the", "a"})
	s := "The Bear Attacked The Man's Camp!"
	first := p.Normalize(s)
	second := p.Normalize(strings.Join(first, " "))
	assert.Equal(t, first, second)
}

func TestLoadStopWordsFiltersBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/stopwords.txt"
	require.NoError(t, os.WriteFile(path, []byte("the\n\na\n  \nan\n"), 0o644))

	words, err := LoadStopWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "a", "an"}, words)
}
