// Package config loads the movieidx.yaml configuration that tunes BM25,
// fusion, chunking and embedding defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BM25Config holds Okapi BM25 tuning parameters.
type BM25Config struct {
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`
}

// FusionConfig holds the defaults for hybrid ranking.
type FusionConfig struct {
	Alpha       float64 `yaml:"alpha"`
	RRFConstant int     `yaml:"rrf_k"`
	// OverfetchFactor is the "C" in "ask each searcher for limit*C
	// candidates"; spec.md fixes this at 500.
	OverfetchFactor int `yaml:"overfetch_factor"`
}

// ChunkConfig holds sentence-chunking defaults.
type ChunkConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// EmbeddingConfig holds the embedder selection and cache sizing.
type EmbeddingConfig struct {
	Model     string `yaml:"model"`
	CacheSize int    `yaml:"cache_size"`
}

// PathsConfig locates the dataset and cache directory.
type PathsConfig struct {
	MoviesFile     string `yaml:"movies_file"`
	StopwordsFile  string `yaml:"stopwords_file"`
	GoldenDataset  string `yaml:"golden_dataset"`
	CacheDir       string `yaml:"cache_dir"`
}

// Config is the full movieidx.yaml schema.
type Config struct {
	Version    int             `yaml:"version"`
	Paths      PathsConfig     `yaml:"paths"`
	BM25       BM25Config      `yaml:"bm25"`
	Fusion     FusionConfig    `yaml:"fusion"`
	Chunk      ChunkConfig     `yaml:"chunk"`
	Embeddings EmbeddingConfig `yaml:"embeddings"`
}

// New returns a Config populated with spec.md's documented defaults.
func New() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			MoviesFile:    "data/movies.json",
			StopwordsFile: "data/stopwords.txt",
			GoldenDataset: "data/golden_dataset.json",
			CacheDir:      "cache",
		},
		BM25: BM25Config{K1: 1.5, B: 0.75},
		Fusion: FusionConfig{
			Alpha:           0.5,
			RRFConstant:     60,
			OverfetchFactor: 500,
		},
		Chunk: ChunkConfig{Size: 4, Overlap: 1},
		Embeddings: EmbeddingConfig{
			Model:     "static",
			CacheSize: 1000,
		},
	}
}

// Load reads movieidx.yaml from dir if present, merging it over New()'s
// defaults. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := New()

	path := filepath.Join(dir, "movieidx.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks structural invariants spec.md relies on.
func (c *Config) Validate() error {
	if c.BM25.K1 < 0 {
		return fmt.Errorf("bm25.k1 must be non-negative, got %f", c.BM25.K1)
	}
	if c.BM25.B < 0 || c.BM25.B > 1 {
		return fmt.Errorf("bm25.b must be in [0,1], got %f", c.BM25.B)
	}
	if c.Fusion.Alpha < 0 || c.Fusion.Alpha > 1 {
		return fmt.Errorf("fusion.alpha must be in [0,1], got %f", c.Fusion.Alpha)
	}
	if c.Fusion.RRFConstant <= 0 {
		return fmt.Errorf("fusion.rrf_k must be positive, got %d", c.Fusion.RRFConstant)
	}
	if c.Fusion.OverfetchFactor <= 0 {
		return fmt.Errorf("fusion.overfetch_factor must be positive, got %d", c.Fusion.OverfetchFactor)
	}
	if c.Chunk.Size <= 0 {
		return fmt.Errorf("chunk.size must be positive, got %d", c.Chunk.Size)
	}
	if c.Chunk.Overlap < 0 || c.Chunk.Overlap >= c.Chunk.Size {
		return fmt.Errorf("chunk.overlap must be in [0, size), got %d (size=%d)", c.Chunk.Overlap, c.Chunk.Size)
	}
	return nil
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
