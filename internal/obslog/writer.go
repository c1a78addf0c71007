package obslog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/movieidx/movieidx/internal/errs"
)

// RotatingWriter is an io.Writer that rotates to a numbered sibling file
// once it exceeds a size threshold, keeping at most maxFiles old copies.
type RotatingWriter struct {
	path     string
	maxSize  int64
	maxFiles int

	mu      sync.Mutex
	file    *os.File
	written int64
}

// NewRotatingWriter opens (creating if necessary) the log file at path.
func NewRotatingWriter(path string, maxSizeMB, maxFiles int) (*RotatingWriter, error) {
	w := &RotatingWriter{
		path:     path,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		maxFiles: maxFiles,
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.Wrap(errs.ExternalFailure, "create log directory "+filepath.Dir(path), err)
	}
	if err := w.openFile(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer, rotating the file first if this write would
// exceed maxSize. A rotation failure is reported through the returned
// error rather than printed directly; slog discards a Handler's error the
// same way it would discard this one, so the line is still appended to
// whichever file is currently open instead of being dropped.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var rotateErr error
	if w.maxSize > 0 && w.written+int64(len(p)) > w.maxSize {
		rotateErr = w.rotate()
	}
	if w.file == nil {
		// rotate failed to reopen; fall back to the original path so the
		// line is not lost entirely.
		if err := w.openFile(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.written += int64(n)
	if err != nil {
		return n, errs.Wrap(errs.ExternalFailure, "write log file "+w.path, err)
	}
	return n, rotateErr
}

// Close closes the underlying file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// Sync flushes the file to disk.
func (w *RotatingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		return w.file.Sync()
	}
	return nil
}

func (w *RotatingWriter) openFile() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.Wrap(errs.ExternalFailure, "open log file "+w.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return errs.Wrap(errs.ExternalFailure, "stat log file "+w.path, err)
	}
	w.file = f
	w.written = info.Size()
	return nil
}

// rotate shifts the fixed sequence path.(maxFiles-1) .. path.1 up by one
// slot, dropping whatever would land past maxFiles, then moves the
// current file to path.1 and reopens a fresh one at path. Unlike a
// glob-and-sort approach, this only ever touches the maxFiles index names
// it already knows about, so a rename failure on one slot can't corrupt
// the ordering of the rest.
func (w *RotatingWriter) rotate() error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			w.file = nil
			return errs.Wrap(errs.ExternalFailure, "close log file "+w.path, err)
		}
		w.file = nil
	}

	if w.maxFiles > 0 {
		oldest := fmt.Sprintf("%s.%d", w.path, w.maxFiles)
		_ = os.Remove(oldest)
		for n := w.maxFiles - 1; n >= 1; n-- {
			src := fmt.Sprintf("%s.%d", w.path, n)
			dst := fmt.Sprintf("%s.%d", w.path, n+1)
			if _, err := os.Stat(src); err == nil {
				_ = os.Rename(src, dst)
			}
		}
		if _, err := os.Stat(w.path); err == nil {
			if err := os.Rename(w.path, w.path+".1"); err != nil {
				return errs.Wrap(errs.ExternalFailure, "rotate log file "+w.path, err)
			}
		}
	}

	w.written = 0
	return w.openFile()
}
