package lexical

import "github.com/movieidx/movieidx/internal/corpus"

// Document is a single corpus record; see corpus.Document. Aliased here so
// existing callers can keep writing lexical.Document.
type Document = corpus.Document
