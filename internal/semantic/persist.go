package semantic

import (
	"context"
	"path/filepath"

	"github.com/movieidx/movieidx/internal/corpus"
	"github.com/movieidx/movieidx/internal/errs"
	"github.com/movieidx/movieidx/internal/persist"
)

const (
	chunkMatrixFile = "chunk_matrix"
	chunkMetaFile   = "chunk_meta"
)

// fingerprint captures everything a stale chunk cache would disagree with:
// how many documents it was built from, which model embedded them, and the
// chunk size and overlap used to split them.
// Load checks it and forces a rebuild on mismatch, per spec.md §9.
type fingerprint struct {
	DocumentCount int
	ModelName     string
	Size          int
	Overlap       int
}

// chunkMeta is the artifact stored under chunkMetaFile: everything about
// the chunk matrix except the vectors themselves, which live separately
// under chunkMatrixFile.
type chunkMeta struct {
	Fingerprint fingerprint
	DocMap      map[uint64]corpus.Document
	Metadata    []ChunkMetadata
}

func (ix *Index) fingerprintFor(documentCount int) fingerprint {
	return fingerprint{
		DocumentCount: documentCount,
		ModelName:     ix.embedder.ModelName(),
		Size:          ix.size,
		Overlap:       ix.overlap,
	}
}

// Save writes the chunk embedding matrix and its metadata atomically to dir.
func (ix *Index) Save(dir string, sourceDocumentCount int) error {
	if err := persist.WriteAtomic(filepath.Join(dir, chunkMatrixFile), persist.MagicChunkMatrix, ix.vectors); err != nil {
		return err
	}
	meta := chunkMeta{
		Fingerprint: ix.fingerprintFor(sourceDocumentCount),
		DocMap:      ix.docMap,
		Metadata:    ix.metadata,
	}
	return persist.WriteAtomic(filepath.Join(dir, chunkMetaFile), persist.MagicChunkMeta, meta)
}

// Load replaces ix's state with the cached artifacts in dir if their
// fingerprint matches sourceDocumentCount; otherwise it reports
// CacheIncompatible so the caller can rebuild.
func (ix *Index) Load(dir string, sourceDocumentCount int) error {
	var vectors [][]float32
	if err := persist.Read(filepath.Join(dir, chunkMatrixFile), persist.MagicChunkMatrix, &vectors); err != nil {
		return err
	}
	var meta chunkMeta
	if err := persist.Read(filepath.Join(dir, chunkMetaFile), persist.MagicChunkMeta, &meta); err != nil {
		return err
	}

	want := ix.fingerprintFor(sourceDocumentCount)
	if meta.Fingerprint != want {
		return errs.New(errs.CacheIncompatible, dir+": chunk cache fingerprint mismatch")
	}

	ix.vectors = vectors
	ix.docMap = meta.DocMap
	ix.metadata = meta.Metadata
	return nil
}

// LoadOrBuild loads the cached chunk index from dir if present and
// fingerprint-consistent with documents, otherwise builds fresh from
// documents and writes the result back to dir.
func (ix *Index) LoadOrBuild(ctx context.Context, dir string, documents []corpus.Document) error {
	err := ix.Load(dir, len(documents))
	if err == nil {
		return nil
	}
	if err := ix.Build(ctx, documents); err != nil {
		return err
	}
	return ix.Save(dir, len(documents))
}
