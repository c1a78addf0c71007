package lexical

import (
	"path/filepath"

	"github.com/movieidx/movieidx/internal/persist"
)

const (
	postingsFile   = "index"
	docMapFile     = "docmap"
	termFreqsFile  = "term_frequencies"
	docLengthsFile = "doc_lengths"
)

// persistedCorpus carries the fields Save/Load round-trip beyond the four
// raw artifacts: document iteration order and the average length, both
// cheap to recompute but persisted anyway so Load need not re-derive them.
type persistedCorpus struct {
	DocOrder  []uint64
	AvgDocLen float64
}

const corpusMetaFile = "corpus_meta"

var magicCorpusMeta = [4]byte{'M', 'I', 'C', 'S'}

// Save writes the four lexical artifacts spec.md §4.7 names (postings,
// docmap, term frequencies, doc lengths) plus a small corpus metadata
// artifact, atomically, into dir.
func (ix *Index) Save(dir string) error {
	if err := persist.WriteAtomic(filepath.Join(dir, postingsFile), persist.MagicPostings, ix.postings); err != nil {
		return err
	}
	if err := persist.WriteAtomic(filepath.Join(dir, docMapFile), persist.MagicDocMap, ix.docMap); err != nil {
		return err
	}
	if err := persist.WriteAtomic(filepath.Join(dir, termFreqsFile), persist.MagicTermFreqs, ix.termFreqs); err != nil {
		return err
	}
	if err := persist.WriteAtomic(filepath.Join(dir, docLengthsFile), persist.MagicDocLengths, ix.docLengths); err != nil {
		return err
	}
	meta := persistedCorpus{DocOrder: ix.docOrder, AvgDocLen: ix.avgDocLen}
	return persist.WriteAtomic(filepath.Join(dir, corpusMetaFile), magicCorpusMeta, meta)
}

// Load replaces ix's in-memory state with the artifacts found in dir.
// Missing any of the five artifacts Save writes (the four lexical ones
// plus the corpus metadata) surfaces CacheMissing naming the file, per
// spec.md §4.2.
func (ix *Index) Load(dir string) error {
	var postings map[string][]uint64
	if err := persist.Read(filepath.Join(dir, postingsFile), persist.MagicPostings, &postings); err != nil {
		return err
	}
	var docMap map[uint64]Document
	if err := persist.Read(filepath.Join(dir, docMapFile), persist.MagicDocMap, &docMap); err != nil {
		return err
	}
	var termFreqs map[uint64]map[string]uint32
	if err := persist.Read(filepath.Join(dir, termFreqsFile), persist.MagicTermFreqs, &termFreqs); err != nil {
		return err
	}
	var docLengths map[uint64]uint32
	if err := persist.Read(filepath.Join(dir, docLengthsFile), persist.MagicDocLengths, &docLengths); err != nil {
		return err
	}
	var meta persistedCorpus
	if err := persist.Read(filepath.Join(dir, corpusMetaFile), magicCorpusMeta, &meta); err != nil {
		return err
	}

	ix.postings = postings
	ix.docMap = docMap
	ix.termFreqs = termFreqs
	ix.docLengths = docLengths
	ix.docOrder = meta.DocOrder
	ix.avgDocLen = meta.AvgDocLen
	return nil
}
