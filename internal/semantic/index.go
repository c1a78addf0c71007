package semantic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/movieidx/movieidx/internal/corpus"
	"github.com/movieidx/movieidx/internal/embedding"
	"github.com/movieidx/movieidx/internal/errs"
)

// ChunkMetadata locates a chunk within its source document.
type ChunkMetadata struct {
	DocID            uint64
	ChunkIndex       int
	TotalChunksInDoc int
}

// Index is a chunked dense-vector index: each document's description is
// split into overlapping sentence windows, each window is embedded once,
// and search reduces to the best-scoring chunk per document.
type Index struct {
	embedder Embedder
	size     int
	overlap  int

	docMap   map[uint64]corpus.Document
	vectors  [][]float32
	metadata []ChunkMetadata
}

// Embedder aliases embedding.Embedder, named locally so callers can pass
// embedding.CachedEmbedder or
// embedding.StaticEmbedder interchangeably.
type Embedder = embedding.Embedder

// New creates an empty Index. size and overlap configure SentenceChunk and
// fall back to spec.md §4.4's 4/1: size when non-positive, overlap when
// negative or not less than size (an overlap of 0 is kept).
func New(embedder Embedder, size, overlap int) *Index {
	if size <= 0 {
		size = 4
	}
	if overlap < 0 || overlap >= size {
		overlap = 1
	}
	return &Index{embedder: embedder, size: size, overlap: overlap}
}

// DocCount returns the number of distinct documents with at least one chunk.
func (ix *Index) DocCount() int { return len(ix.docMap) }

// ChunkCount returns the total number of embedded chunks.
func (ix *Index) ChunkCount() int { return len(ix.vectors) }

// Build chunks every document's description, embeds every chunk in one
// batch call, and replaces the index contents. Documents with an empty
// description contribute no chunks.
func (ix *Index) Build(ctx context.Context, documents []corpus.Document) error {
	docMap := make(map[uint64]corpus.Document, len(documents))
	var texts []string
	var metas []ChunkMetadata

	for _, doc := range documents {
		if strings.TrimSpace(doc.Description) == "" {
			continue
		}
		windows := SentenceChunk(doc.Description, ix.size, ix.overlap)
		if len(windows) == 0 {
			continue
		}
		docMap[doc.ID] = doc
		for i, window := range windows {
			texts = append(texts, strings.Join(window, " "))
			metas = append(metas, ChunkMetadata{
				DocID:            doc.ID,
				ChunkIndex:       i,
				TotalChunksInDoc: len(windows),
			})
		}
	}

	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return errs.Wrap(errs.ExternalFailure, "embed chunks", err)
		}
	}

	ix.docMap = docMap
	ix.vectors = vectors
	ix.metadata = metas
	return nil
}

// Document returns the document with the given id, if it has any chunks.
func (ix *Index) Document(id uint64) (corpus.Document, bool) {
	doc, ok := ix.docMap[id]
	return doc, ok
}

// ScoredDocument pairs a document with a similarity score.
type ScoredDocument struct {
	Document corpus.Document
	Score    float64
}

// SearchChunks embeds the query, scores every chunk by cosine similarity,
// keeps each document's single best-scoring chunk, and returns the top
// limit documents sorted by descending score then ascending doc id.
func (ix *Index) SearchChunks(ctx context.Context, query string, limit int) ([]ScoredDocument, error) {
	if ix.docMap == nil {
		return nil, errs.New(errs.NotInitialized, "semantic index searched before load or build")
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	queryVec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errs.Wrap(errs.ExternalFailure, "embed query", err)
	}

	best := make(map[uint64]float64)
	for i, vec := range ix.vectors {
		docID := ix.metadata[i].DocID
		score := embedding.CosineSimilarity(queryVec, vec)
		if current, ok := best[docID]; !ok || score > current {
			best[docID] = score
		}
	}

	results := make([]ScoredDocument, 0, len(best))
	for docID, score := range best {
		results = append(results, ScoredDocument{Document: ix.docMap[docID], Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ChunkVector returns the embedding for a (docID, chunkIndex) pair, used by
// diagnostics and tests that need to inspect a specific chunk's vector.
func (ix *Index) ChunkVector(docID uint64, chunkIndex int) ([]float32, error) {
	for i, meta := range ix.metadata {
		if meta.DocID == docID && meta.ChunkIndex == chunkIndex {
			return ix.vectors[i], nil
		}
	}
	return nil, errs.New(errs.UnknownDocument, fmt.Sprintf("no chunk %d for document %d", chunkIndex, docID))
}
