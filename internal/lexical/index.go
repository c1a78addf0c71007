// Package lexical implements the inverted index and Okapi BM25 scoring
// spec.md §4.2 names: postings lists, per-document term frequencies,
// document lengths, and the BM25 TF/IDF primitives the diagnostic CLI
// commands expose individually.
package lexical

import (
	"math"
	"sort"

	"github.com/movieidx/movieidx/internal/errs"
	"github.com/movieidx/movieidx/internal/textpipeline"
)

// BM25Params tunes the BM25 TF saturation curve.
type BM25Params struct {
	K1 float64
	B  float64
}

// DefaultBM25Params matches spec.md §4.2's documented defaults.
func DefaultBM25Params() BM25Params {
	return BM25Params{K1: 1.5, B: 0.75}
}

// Index is the built, read-only inverted index over a document set.
type Index struct {
	pipeline *textpipeline.Pipeline
	params   BM25Params

	postings    map[string][]uint64          // term -> doc ids, insertion order
	termFreqs   map[uint64]map[string]uint32 // doc id -> term -> count
	docLengths  map[uint64]uint32            // doc id -> token count
	docMap      map[uint64]Document          // doc id -> document
	docOrder    []uint64                     // iteration order at build time
	avgDocLen   float64
}

// New creates an empty Index bound to a text pipeline and BM25 parameters.
func New(pipeline *textpipeline.Pipeline, params BM25Params) *Index {
	return &Index{
		pipeline:   pipeline,
		params:     params,
		postings:   make(map[string][]uint64),
		termFreqs:  make(map[uint64]map[string]uint32),
		docLengths: make(map[uint64]uint32),
		docMap:     make(map[uint64]Document),
	}
}

// Build populates the index from a document set, per spec.md §4.2: for
// each document, tokens = normalize(title + " " + description); record
// length and term-frequency multiset; append the doc id once per unique
// token to that token's posting list, in document-iteration order.
func (ix *Index) Build(documents []Document) {
	ix.postings = make(map[string][]uint64)
	ix.termFreqs = make(map[uint64]map[string]uint32)
	ix.docLengths = make(map[uint64]uint32)
	ix.docMap = make(map[uint64]Document, len(documents))
	ix.docOrder = make([]uint64, 0, len(documents))

	var totalLen uint64
	for _, doc := range documents {
		tokens := ix.pipeline.Normalize(doc.Title + " " + doc.Description)

		ix.docMap[doc.ID] = doc
		ix.docOrder = append(ix.docOrder, doc.ID)
		ix.docLengths[doc.ID] = uint32(len(tokens))
		totalLen += uint64(len(tokens))

		counts := make(map[string]uint32, len(tokens))
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			ix.postings[tok] = append(ix.postings[tok], doc.ID)
		}
		ix.termFreqs[doc.ID] = counts
	}

	if len(documents) == 0 {
		ix.avgDocLen = 0
	} else {
		ix.avgDocLen = float64(totalLen) / float64(len(documents))
	}
}

// DocCount returns the number of documents in the loaded index.
func (ix *Index) DocCount() int {
	return len(ix.docMap)
}

// AverageDocLength returns the corpus's average document length, 0 for an
// empty corpus per spec.md §3's invariant.
func (ix *Index) AverageDocLength() float64 {
	return ix.avgDocLen
}

// Document returns the document for id and whether it was found.
func (ix *Index) Document(id uint64) (Document, bool) {
	d, ok := ix.docMap[id]
	return d, ok
}

// singleToken tokenizes term and enforces the "exactly one token" contract
// diagnostic operations require, per spec.md §4.2.
func (ix *Index) singleToken(term string) (string, error) {
	tokens := ix.pipeline.Normalize(term)
	if len(tokens) != 1 {
		return "", errs.New(errs.BadTerm, term)
	}
	return tokens[0], nil
}

// GetDocuments returns the posting list for term (tokenized to exactly one
// token), or an empty slice if the token is absent from the corpus.
func (ix *Index) GetDocuments(term string) ([]uint64, error) {
	tok, err := ix.singleToken(term)
	if err != nil {
		return nil, err
	}
	return append([]uint64(nil), ix.postings[tok]...), nil
}

// GetTF returns the raw count of term in doc_id.
func (ix *Index) GetTF(docID uint64, term string) (uint32, error) {
	if _, ok := ix.docMap[docID]; !ok {
		return 0, errs.New(errs.UnknownDocument, term)
	}
	tok, err := ix.singleToken(term)
	if err != nil {
		return 0, err
	}
	return ix.termFreqs[docID][tok], nil
}

// GetIDF returns the smoothed inverse document frequency
// ln((N+1)/(df+1)), always positive.
func (ix *Index) GetIDF(term string) (float64, error) {
	tok, err := ix.singleToken(term)
	if err != nil {
		return 0, err
	}
	n := float64(len(ix.docMap))
	df := float64(len(ix.postings[tok]))
	return math.Log((n + 1) / (df + 1)), nil
}

// GetBM25IDF returns the Lucene-style BM25 IDF
// ln(((N-df+0.5)/(df+0.5))+1), always positive.
func (ix *Index) GetBM25IDF(term string) (float64, error) {
	tok, err := ix.singleToken(term)
	if err != nil {
		return 0, err
	}
	n := float64(len(ix.docMap))
	df := float64(len(ix.postings[tok]))
	return math.Log(((n-df+0.5)/(df+0.5))+1), nil
}

// GetBM25TF returns the length-normalized BM25 term-frequency component.
func (ix *Index) GetBM25TF(docID uint64, term string, k1, b float64) (float64, error) {
	if _, ok := ix.docMap[docID]; !ok {
		return 0, errs.New(errs.UnknownDocument, term)
	}
	tok, err := ix.singleToken(term)
	if err != nil {
		return 0, err
	}
	tf := float64(ix.termFreqs[docID][tok])
	dl := float64(ix.docLengths[docID])

	ratio := 1.0
	if ix.avgDocLen != 0 {
		ratio = dl / ix.avgDocLen
	}
	denom := tf + k1*(1-b+b*ratio)
	if denom == 0 {
		return 0, nil
	}
	return tf * (k1 + 1) / denom, nil
}

// BM25 returns get_bm25_tf * get_bm25_idf using the index's configured
// k1/b parameters.
func (ix *Index) BM25(docID uint64, term string) (float64, error) {
	idf, err := ix.GetBM25IDF(term)
	if err != nil {
		return 0, err
	}
	tf, err := ix.GetBM25TF(docID, term, ix.params.K1, ix.params.B)
	if err != nil {
		return 0, err
	}
	return tf * idf, nil
}

// ScoredDocument pairs a document with a ranking score.
type ScoredDocument struct {
	Document Document
	Score    float64
}

// BM25Search tokenizes query, accumulates BM25 score per candidate
// document across the posting lists of recognized query tokens, and
// returns the top limit documents, ties broken by ascending doc_id.
func (ix *Index) BM25Search(query string, limit int) []ScoredDocument {
	tokens := ix.pipeline.Normalize(query)
	scores := make(map[uint64]float64)

	for _, tok := range tokens {
		ids, ok := ix.postings[tok]
		if !ok {
			continue
		}
		idf, err := ix.GetBM25IDF(tok)
		if err != nil {
			continue
		}
		for _, id := range ids {
			tf, err := ix.GetBM25TF(id, tok, ix.params.K1, ix.params.B)
			if err != nil {
				continue
			}
			scores[id] += tf * idf
		}
	}

	results := make([]ScoredDocument, 0, len(scores))
	for id, score := range scores {
		results = append(results, ScoredDocument{Document: ix.docMap[id], Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
