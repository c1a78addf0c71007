package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, 1.5, cfg.BM25.K1)
	assert.Equal(t, 0.75, cfg.BM25.B)
	assert.Equal(t, 60, cfg.Fusion.RRFConstant)
	assert.Equal(t, 500, cfg.Fusion.OverfetchFactor)
	assert.Equal(t, 4, cfg.Chunk.Size)
	assert.Equal(t, 1, cfg.Chunk.Overlap)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.BM25.K1 = 1.2
	cfg.Fusion.Alpha = 0.7
	require.NoError(t, cfg.WriteYAML(filepath.Join(dir, "movieidx.yaml")))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1.2, loaded.BM25.K1)
	assert.Equal(t, 0.7, loaded.Fusion.Alpha)
}

func TestValidateRejectsBadAlpha(t *testing.T) {
	cfg := New()
	cfg.Fusion.Alpha = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsOverlapGESize(t *testing.T) {
	cfg := New()
	cfg.Chunk.Overlap = cfg.Chunk.Size
	assert.Error(t, cfg.Validate())
}
