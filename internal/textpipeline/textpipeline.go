// Package textpipeline implements the deterministic string-to-token
// pipeline shared by the lexical index and the query path: lowercase,
// strip punctuation, collapse whitespace, split, drop stop words, stem.
package textpipeline

import (
	"bufio"
	"os"
	"strings"
	"unicode"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// extraPunctuation holds code points outside ASCII punctuation that
// spec.md requires stripped: U+2019, the right single quotation mark used
// in contractions like "it's".
const extraPunctuation = '’'

// Pipeline normalizes free text into an ordered token sequence, given an
// injected stop-word set. It holds no mutable state and is safe for
// concurrent use.
type Pipeline struct {
	stopWords map[string]struct{}
}

// New builds a Pipeline from a stop-word list (already lowercase,
// duplicates and ordering irrelevant).
func New(stopWords []string) *Pipeline {
	m := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		m[w] = struct{}{}
	}
	return &Pipeline{stopWords: m}
}

// LoadStopWords reads a newline-delimited stop-word file, filtering blank
// lines, per spec.md §6.
func LoadStopWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	return words, scanner.Err()
}

// Normalize runs the full pipeline over s: lowercase, strip punctuation,
// collapse whitespace, split, remove stop words, stem. Always returns a
// non-nil slice, possibly empty.
func (p *Pipeline) Normalize(s string) []string {
	lowered := strings.ToLower(s)
	stripped := stripPunctuation(lowered)
	collapsed := collapseWhitespace(stripped)

	tokens := []string{}
	if collapsed != "" {
		tokens = strings.Split(collapsed, " ")
	}

	tokens = p.removeStopWords(tokens)

	stemmed := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		stemmed = append(stemmed, porterstemmer.StemString(t))
	}
	return stemmed
}

// stripPunctuation removes every ASCII punctuation code point plus U+2019.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == extraPunctuation {
			continue
		}
		if r < unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collapseWhitespace replaces any run of ASCII whitespace with a single
// space and trims both ends.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if isASCIISpace(r) {
			if !prevSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// removeStopWords filters already-lowercased tokens against the injected
// stop-word set; comparison is case-sensitive against lowercased tokens,
// per spec.md §4.1.
func (p *Pipeline) removeStopWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, isStop := p.stopWords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}
