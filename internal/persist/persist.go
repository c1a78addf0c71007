// Package persist implements the atomic, versioned binary framing used for
// every cache artifact movieidx writes to its cache directory: inverted
// index structures and chunk-embedding matrices alike.
package persist

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/renameio"

	"github.com/movieidx/movieidx/internal/errs"
)

// Magic identifies the artifact kind stored in a frame, so a reader never
// silently decodes one artifact as another.
type Magic [4]byte

var (
	MagicPostings    = Magic{'M', 'I', 'P', 'L'} // postings lists
	MagicDocMap      = Magic{'M', 'I', 'D', 'M'} // doc map
	MagicTermFreqs   = Magic{'M', 'I', 'T', 'F'} // term frequencies
	MagicDocLengths  = Magic{'M', 'I', 'D', 'L'} // doc lengths
	MagicChunkMatrix = Magic{'M', 'I', 'C', 'E'} // chunk embedding matrix
	MagicChunkMeta   = Magic{'M', 'I', 'C', 'M'} // chunk metadata
	MagicDocEmbed    = Magic{'M', 'I', 'D', 'E'} // whole-document embeddings
)

// CurrentVersion is the framing version this build writes and accepts.
const CurrentVersion byte = 1

// WriteAtomic gob-encodes payload, frames it behind magic+version, and
// writes it to path via a temp-file-then-rename so readers never observe a
// partially-written file.
func WriteAtomic(path string, magic Magic, payload any) error {
	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(payload); err != nil {
		return errs.Wrap(errs.ExternalFailure, "encode artifact", err)
	}

	var frame bytes.Buffer
	frame.Write(magic[:])
	frame.WriteByte(CurrentVersion)
	var bodyLen [8]byte
	binary.BigEndian.PutUint64(bodyLen[:], uint64(body.Len()))
	frame.Write(bodyLen[:])
	frame.Write(body.Bytes())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrap(errs.ExternalFailure, "create cache directory", err)
	}
	if err := renameio.WriteFile(path, frame.Bytes(), 0o644); err != nil {
		return errs.Wrap(errs.ExternalFailure, "write artifact atomically", err)
	}
	return nil
}

// Read validates the magic and version header at path and gob-decodes the
// remaining frame into out. A missing file reports CacheMissing naming the
// path; a magic or version mismatch reports CacheIncompatible.
func Read(path string, magic Magic, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.New(errs.CacheMissing, path)
		}
		return errs.Wrap(errs.ExternalFailure, "read artifact "+path, err)
	}

	if len(data) < len(magic)+1+8 {
		return errs.New(errs.CacheIncompatible, path+": truncated frame")
	}
	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return errs.New(errs.CacheIncompatible, path+": magic mismatch")
	}
	version := data[len(magic)]
	if version != CurrentVersion {
		return errs.New(errs.CacheIncompatible, fmt.Sprintf("%s: unsupported version %d", path, version))
	}
	bodyLen := binary.BigEndian.Uint64(data[len(magic)+1 : len(magic)+9])
	body := data[len(magic)+9:]
	if uint64(len(body)) != bodyLen {
		return errs.New(errs.CacheIncompatible, path+": length mismatch")
	}

	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(out); err != nil {
		return errs.Wrap(errs.ExternalFailure, "decode artifact "+path, err)
	}
	return nil
}

// Exists reports whether an artifact file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// BuildLock serializes concurrent builders writing into the same cache
// directory. It does not serialize builders against concurrent readers;
// spec.md §5/§9 leaves that ordering to the caller.
type BuildLock struct {
	fl *flock.Flock
}

// NewBuildLock creates a lock file at <dir>/.build.lock.
func NewBuildLock(dir string) *BuildLock {
	return &BuildLock{fl: flock.New(filepath.Join(dir, ".build.lock"))}
}

// Lock acquires the exclusive build lock, blocking until available.
func (l *BuildLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return errs.Wrap(errs.ExternalFailure, "create lock directory", err)
	}
	if err := l.fl.Lock(); err != nil {
		return errs.Wrap(errs.ExternalFailure, "acquire build lock", err)
	}
	return nil
}

// Unlock releases the build lock.
func (l *BuildLock) Unlock() error {
	return l.fl.Unlock()
}
