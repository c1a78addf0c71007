package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentenceChunkEmptyInput(t *testing.T) {
	assert.Nil(t, SentenceChunk("", 4, 1))
	assert.Nil(t, SentenceChunk("   ", 4, 1))
}

func TestSentenceChunkSingleWindow(t *testing.T) {
	windows := SentenceChunk("One. Two. Three.", 4, 1)
	assert.Len(t, windows, 1)
	assert.Equal(t, []string{"One.", "Two.", "Three."}, windows[0])
}

func TestSentenceChunkSlidesWithOverlap(t *testing.T) {
	text := "One. Two. Three. Four. Five. Six."
	windows := SentenceChunk(text, 4, 1)

	assert.Equal(t, [][]string{
		{"One.", "Two.", "Three.", "Four."},
		{"Four.", "Five.", "Six."},
	}, windows)
}

func TestSentenceChunkDiscardsEmptySentences(t *testing.T) {
	windows := SentenceChunk("One.   Two.", 4, 1)
	assert.Len(t, windows, 1)
	assert.Equal(t, []string{"One.", "Two."}, windows[0])
}

func TestSentenceChunkHandlesQuestionsAndExclamations(t *testing.T) {
	windows := SentenceChunk("Is this real? Yes! It is.", 4, 1)
	assert.Equal(t, []string{"Is this real?", "Yes!", "It is."}, windows[0])
}
