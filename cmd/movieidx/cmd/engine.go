package cmd

import (
	"context"

	"github.com/movieidx/movieidx/internal/config"
	"github.com/movieidx/movieidx/internal/corpus"
	"github.com/movieidx/movieidx/internal/dataset"
	"github.com/movieidx/movieidx/internal/embedding"
	"github.com/movieidx/movieidx/internal/hybrid"
	"github.com/movieidx/movieidx/internal/lexical"
	"github.com/movieidx/movieidx/internal/semantic"
	"github.com/movieidx/movieidx/internal/textpipeline"
)

// engine bundles everything a CLI command needs to run a query: the
// resolved configuration, the loaded document set, and the built indexes.
type engine struct {
	cfg       *config.Config
	documents []corpus.Document
	pipeline  *textpipeline.Pipeline
	embedder  embedding.Embedder
	lexical   *lexical.Index
	semantic  *semantic.Index
}

func loadConfig() (*config.Config, error) {
	return config.Load(configDir)
}

func newPipeline(cfg *config.Config) (*textpipeline.Pipeline, error) {
	words, err := textpipeline.LoadStopWords(cfg.Paths.StopwordsFile)
	if err != nil {
		return nil, err
	}
	return textpipeline.New(words), nil
}

func newEmbedder(cfg *config.Config) embedding.Embedder {
	var base embedding.Embedder = embedding.NewStaticEmbedder()
	return embedding.NewCachedEmbedder(base, cfg.Embeddings.CacheSize)
}

// loadLexicalEngine loads config, documents, pipeline, and a built (not
// persisted) lexical index. It is the minimum state the BM25/search/
// diagnostic commands need.
func loadLexicalEngine() (*engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	documents, err := dataset.LoadMovies(cfg.Paths.MoviesFile)
	if err != nil {
		return nil, err
	}
	pipeline, err := newPipeline(cfg)
	if err != nil {
		return nil, err
	}

	ix := lexical.New(pipeline, lexical.BM25Params{K1: cfg.BM25.K1, B: cfg.BM25.B})
	ix.Build(documents)

	return &engine{cfg: cfg, documents: documents, pipeline: pipeline, lexical: ix}, nil
}

// loadFullEngine additionally loads an embedder and a chunked semantic
// index, loading it from cache if present and consistent, otherwise
// building it and writing it to cache. Commands that need hybrid
// fusion or semantic search call this instead of loadLexicalEngine.
func loadFullEngine(ctx context.Context) (*engine, error) {
	e, err := loadLexicalEngine()
	if err != nil {
		return nil, err
	}
	e.embedder = newEmbedder(e.cfg)

	sem := semantic.New(e.embedder, e.cfg.Chunk.Size, e.cfg.Chunk.Overlap)
	if err := sem.LoadOrBuild(ctx, e.cfg.Paths.CacheDir, e.documents); err != nil {
		return nil, err
	}
	e.semantic = sem

	return e, nil
}

// ranker builds a hybrid.Ranker wired to this engine's lexical and
// semantic searchers.
func (e *engine) ranker() *hybrid.Ranker {
	return hybrid.New(
		hybrid.WithLexicalSearcher(hybrid.LexicalSearcher{Index: e.lexical}),
		hybrid.WithSemanticSearcher(hybrid.SemanticSearcher{Index: e.semantic}),
		hybrid.WithOverfetchFactor(e.cfg.Fusion.OverfetchFactor),
	)
}
