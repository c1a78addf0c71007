package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieidx/movieidx/internal/errs"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "postings")

	in := map[string][]uint64{"bear": {1, 2, 3}, "revenant": {2}}
	require.NoError(t, WriteAtomic(path, MagicPostings, in))

	var out map[string][]uint64
	require.NoError(t, Read(path, MagicPostings, &out))
	assert.Equal(t, in, out)
}

func TestReadMissingFileIsCacheMissing(t *testing.T) {
	dir := t.TempDir()
	var out map[string][]uint64
	err := Read(filepath.Join(dir, "nope"), MagicPostings, &out)
	require.Error(t, err)
	kind, ok := errs.Of(err)
	require.True(t, ok)
	assert.Equal(t, errs.CacheMissing, kind)
}

func TestReadWrongMagicIsCacheIncompatible(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docmap")
	require.NoError(t, WriteAtomic(path, MagicDocMap, map[uint64]string{1: "Up"}))

	var out map[uint64]string
	err := Read(path, MagicPostings, &out)
	require.Error(t, err)
	kind, ok := errs.Of(err)
	require.True(t, ok)
	assert.Equal(t, errs.CacheIncompatible, kind)
}

func TestBuildLockCreatesLockFile(t *testing.T) {
	dir := t.TempDir()
	l1 := NewBuildLock(dir)
	require.NoError(t, l1.Lock())
	defer l1.Unlock()

	l2 := NewBuildLock(dir)
	// TryLock-equivalent: a second lock object should fail to acquire while
	// l1 holds the lock, but we only expose blocking Lock here, so just
	// assert the lock file exists instead of deadlocking the test.
	assert.FileExists(t, filepath.Join(dir, ".build.lock"))
	_ = l2
}
