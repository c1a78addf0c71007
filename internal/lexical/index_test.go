package lexical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieidx/movieidx/internal/errs"
	"github.com/movieidx/movieidx/internal/textpipeline"
)

func newTestIndex(docs []Document) *Index {
	pipeline := textpipeline.New(nil)
	ix := New(pipeline, DefaultBM25Params())
	ix.Build(docs)
	return ix
}

func TestBuildLengthConsistency(t *testing.T) {
	docs := []Document{
		{ID: 1, Title: "Brave", Description: "A princess changes her fate"},
		{ID: 2, Title: "Merida", Description: "An archer finds her courage"},
		{ID: 3, Title: "Up", Description: "A house flies to Paradise Falls"},
	}
	ix := newTestIndex(docs)

	for id, counts := range ix.termFreqs {
		var sum uint32
		for _, c := range counts {
			sum += c
		}
		assert.Equal(t, ix.docLengths[id], sum, "doc %d length mismatch", id)
	}
}

func TestPostingCompleteness(t *testing.T) {
	docs := []Document{
		{ID: 1, Title: "Brave", Description: "A princess"},
		{ID: 2, Title: "Merida", Description: "An archer"},
	}
	ix := newTestIndex(docs)

	for term, ids := range ix.postings {
		for _, id := range ids {
			assert.Greater(t, ix.termFreqs[id][term], uint32(0))
		}
	}
	for id, counts := range ix.termFreqs {
		for term, c := range counts {
			if c == 0 {
				continue
			}
			assert.Contains(t, ix.postings[term], id)
		}
	}
}

func TestPostingsHaveNoDuplicates(t *testing.T) {
	docs := []Document{{ID: 1, Title: "Brave Brave", Description: "brave brave brave"}}
	ix := newTestIndex(docs)
	seen := map[uint64]int{}
	for _, id := range ix.postings["brave"] {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "doc %d appears %d times", id, n)
	}
}

func TestEmptyCorpusAverageLengthZero(t *testing.T) {
	ix := newTestIndex(nil)
	assert.Equal(t, 0.0, ix.AverageDocLength())
	assert.Equal(t, 0, ix.DocCount())
}

// S1: lexical-only scenario from spec.md §8.
func TestS1LexicalOnlyRanksExactTitleMatchFirst(t *testing.T) {
	docs := []Document{
		{ID: 1, Title: "Brave", Description: "A Scottish princess defies tradition"},
		{ID: 2, Title: "Merida", Description: "Merida is brave and stubborn"},
		{ID: 3, Title: "Up", Description: "An old man and a boy float away"},
	}
	ix := newTestIndex(docs)

	results := ix.BM25Search("merida", 3)
	require.NotEmpty(t, results)
	assert.Equal(t, "Merida", results[0].Document.Title)
}

// S2: BM25 length normalization from spec.md §8.
func TestS2BM25FavorsShorterDocumentDespiteFewerOccurrences(t *testing.T) {
	long := strings.Repeat("filler word ", 33) + "bear bear bear"
	short := "bear short description here today and tomorrow ok"

	docs := []Document{
		{ID: 1, Title: "LongBear", Description: long},
		{ID: 2, Title: "ShortBear", Description: short},
	}
	ix := newTestIndex(docs)

	results := ix.BM25Search("bear", 2)
	require.Len(t, results, 2)
	assert.Equal(t, "ShortBear", results[0].Document.Title)
}

func TestGetDocumentsBadTermOnMultiToken(t *testing.T) {
	ix := newTestIndex([]Document{{ID: 1, Title: "Up", Description: "house"}})
	_, err := ix.GetDocuments("two words")
	require.Error(t, err)
	kind, ok := errs.Of(err)
	require.True(t, ok)
	assert.Equal(t, errs.BadTerm, kind)
}

func TestGetTFUnknownDocument(t *testing.T) {
	ix := newTestIndex([]Document{{ID: 1, Title: "Up", Description: "house"}})
	_, err := ix.GetTF(999, "house")
	require.Error(t, err)
	kind, ok := errs.Of(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnknownDocument, kind)
}

func TestGetIDFAlwaysPositive(t *testing.T) {
	docs := []Document{
		{ID: 1, Title: "A", Description: "bear"},
		{ID: 2, Title: "B", Description: "bear"},
		{ID: 3, Title: "C", Description: "shark"},
	}
	ix := newTestIndex(docs)
	idf, err := ix.GetIDF("bear")
	require.NoError(t, err)
	assert.Greater(t, idf, 0.0)

	bmIdf, err := ix.GetBM25IDF("bear")
	require.NoError(t, err)
	assert.Greater(t, bmIdf, 0.0)
}

// law 8: BM25 bounds.
func TestBM25TFApproachesK1Plus1AtHighFrequency(t *testing.T) {
	desc := strings.Repeat("bear ", 500)
	docs := []Document{{ID: 1, Title: "ManyBears", Description: desc}}
	ix := newTestIndex(docs)

	tf, err := ix.GetBM25TF(1, "bear", 1.5, 0.75)
	require.NoError(t, err)
	assert.Greater(t, tf, 0.0)
	assert.Less(t, tf, 2.6) // k1+1 == 2.5, asymptote from below
}

func TestBM25SearchEmptyQueryReturnsEmpty(t *testing.T) {
	ix := newTestIndex([]Document{{ID: 1, Title: "Up", Description: "house"}})
	results := ix.BM25Search("", 10)
	assert.Empty(t, results)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	docs := []Document{
		{ID: 1, Title: "Brave", Description: "A princess changes her fate"},
		{ID: 2, Title: "Merida", Description: "An archer finds her courage"},
	}
	ix := newTestIndex(docs)

	dir := t.TempDir()
	require.NoError(t, ix.Save(dir))

	loaded := New(textpipeline.New(nil), DefaultBM25Params())
	require.NoError(t, loaded.Load(dir))

	assert.Equal(t, ix.postings, loaded.postings)
	assert.Equal(t, ix.docMap, loaded.docMap)
	assert.Equal(t, ix.termFreqs, loaded.termFreqs)
	assert.Equal(t, ix.docLengths, loaded.docLengths)
	assert.Equal(t, ix.avgDocLen, loaded.avgDocLen)
}

func TestLoadMissingArtifactIsCacheMissing(t *testing.T) {
	ix := New(textpipeline.New(nil), DefaultBM25Params())
	err := ix.Load(t.TempDir())
	require.Error(t, err)
	kind, ok := errs.Of(err)
	require.True(t, ok)
	assert.Equal(t, errs.CacheMissing, kind)
}
