// Package semantic implements the chunked dense-vector index spec.md §4.4
// names: sentence-window chunking of document descriptions, a chunk
// embedding matrix built via an injected Embedder, and best-chunk-per-
// document cosine search.
package semantic

import (
	"regexp"
	"strings"
)

// sentenceBoundary finds a sentence terminator followed by whitespace.
// Go's regexp package has no lookbehind, so SentenceChunk below consumes
// the terminator itself and splits after it, rather than matching
// `(?<=[.!?])\s+` directly.
var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)

// splitSentences splits text on the same boundary spec.md's
// `(?<=[.!?])\s+` describes: the run of sentence terminators stays
// attached to the preceding sentence, only the whitespace is consumed.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		// Find where the terminator run ends within [start, end) so the
		// sentence keeps its punctuation but not the trailing whitespace.
		termEnd := start
		for termEnd < end && isTerminator(text[termEnd]) {
			termEnd++
		}
		sentences = append(sentences, text[last:termEnd])
		last = end
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}

	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// SentenceChunk splits text into sentences and slides a window of size
// sentences forward by size-overlap each step, appending a final partial
// window if any sentences remain, per spec.md §4.4. Empty input returns an
// empty (nil) slice of windows.
func SentenceChunk(text string, size, overlap int) [][]string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	stride := size - overlap
	if stride <= 0 {
		stride = 1
	}

	var windows [][]string
	for len(sentences) > size {
		window := make([]string, size)
		copy(window, sentences[:size])
		windows = append(windows, window)
		sentences = sentences[stride:]
	}
	if len(sentences) > 0 {
		window := make([]string, len(sentences))
		copy(window, sentences)
		windows = append(windows, window)
	}
	return windows
}
