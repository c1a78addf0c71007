package semantic

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieidx/movieidx/internal/corpus"
	"github.com/movieidx/movieidx/internal/errs"
)

// fakeEmbedder embeds text deterministically by counting occurrences of a
// handful of marker words, so tests can reason about similarity without
// depending on embedding.StaticEmbedder's hashing scheme.
type fakeEmbedder struct{ dims int }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	markers := []string{"space", "heist", "romance", "ocean"}
	vec := make([]float32, len(markers))
	lower := strings.ToLower(text)
	for i, m := range markers {
		if strings.Contains(lower, m) {
			vec[i] = 1
		}
	}
	return vec, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int  { return 4 }
func (f *fakeEmbedder) ModelName() string { return "fake-test" }

func TestBuildSkipsEmptyDescriptions(t *testing.T) {
	ix := New(&fakeEmbedder{}, 4, 1)
	docs := []corpus.Document{
		{ID: 1, Title: "A", Description: "A space heist unfolds."},
		{ID: 2, Title: "B", Description: ""},
	}
	require.NoError(t, ix.Build(context.Background(), docs))

	assert.Equal(t, 1, ix.DocCount())
	_, ok := ix.Document(2)
	assert.False(t, ok)
}

func TestSearchChunksRanksBestMatchingDocumentFirst(t *testing.T) {
	ix := New(&fakeEmbedder{}, 4, 1)
	docs := []corpus.Document{
		{ID: 1, Title: "Space", Description: "A space heist unfolds among the stars."},
		{ID: 2, Title: "Romance", Description: "A slow romance blooms by the ocean."},
	}
	require.NoError(t, ix.Build(context.Background(), docs))

	results, err := ix.SearchChunks(context.Background(), "space heist", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, uint64(1), results[0].Document.ID)
}

func TestSearchChunksEmptyQueryReturnsEmpty(t *testing.T) {
	ix := New(&fakeEmbedder{}, 4, 1)
	require.NoError(t, ix.Build(context.Background(), nil))

	results, err := ix.SearchChunks(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchChunksBeforeBuildIsNotInitialized(t *testing.T) {
	ix := New(&fakeEmbedder{}, 4, 1)
	_, err := ix.SearchChunks(context.Background(), "space heist", 10)
	require.Error(t, err)
	kind, ok := errs.Of(err)
	require.True(t, ok)
	assert.Equal(t, errs.NotInitialized, kind)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	docs := []corpus.Document{
		{ID: 1, Title: "Space", Description: "A space heist unfolds among the stars."},
	}

	built := New(&fakeEmbedder{}, 4, 1)
	require.NoError(t, built.LoadOrBuild(context.Background(), dir, docs))

	loaded := New(&fakeEmbedder{}, 4, 1)
	require.NoError(t, loaded.Load(dir, len(docs)))
	assert.Equal(t, built.ChunkCount(), loaded.ChunkCount())
	assert.Equal(t, built.DocCount(), loaded.DocCount())
}

func TestLoadFingerprintMismatchIsCacheIncompatible(t *testing.T) {
	dir := t.TempDir()
	docs := []corpus.Document{
		{ID: 1, Title: "Space", Description: "A space heist unfolds among the stars."},
	}
	ix := New(&fakeEmbedder{}, 4, 1)
	require.NoError(t, ix.LoadOrBuild(context.Background(), dir, docs))

	reloaded := New(&fakeEmbedder{}, 4, 1)
	err := reloaded.Load(dir, len(docs)+1)
	require.Error(t, err)
	kind, ok := errs.Of(err)
	require.True(t, ok)
	assert.Equal(t, errs.CacheIncompatible, kind)
}
