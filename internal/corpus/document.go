// Package corpus defines the Document record shared by the lexical and
// semantic indexes, per spec.md §3's data model.
package corpus

// Document is a single corpus record: a stable id, a title, and a
// free-text description. Either field may be empty; documents are
// immutable for the lifetime of an index.
type Document struct {
	ID          uint64
	Title       string
	Description string
}
