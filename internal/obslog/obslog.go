// Package obslog configures structured JSON logging for movieidx commands.
package obslog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config controls where and how verbosely movieidx logs.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the path to the log file. Empty means no file logging.
	FilePath string
	// MaxSizeMB is the maximum size in MB before rotation.
	MaxSizeMB int
	// MaxFiles is the maximum number of rotated files to keep.
	MaxFiles int
	// WriteToStderr controls whether logs are also written to stderr.
	WriteToStderr bool
}

// DefaultConfig returns the non-debug default: info level, stderr only.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		WriteToStderr: true,
	}
}

// DebugConfig returns the configuration used when --debug is passed: debug
// level, stderr plus a rotating file under ~/.movieidx/logs/movieidx.log.
func DebugConfig() Config {
	return Config{
		Level:         "debug",
		FilePath:      DefaultLogPath(),
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: true,
	}
}

// DefaultLogDir returns ~/.movieidx/logs, falling back to a temp directory.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".movieidx", "logs")
	}
	return filepath.Join(home, ".movieidx", "logs")
}

// DefaultLogPath returns the default debug log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "movieidx.log")
}

// Setup builds a slog.Logger per cfg and returns a cleanup func that flushes
// and closes any file handle. Callers that pass an empty FilePath get a
// logger with no file output (stderr if WriteToStderr is set, otherwise
// discarded) and no cleanup work to do.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	var (
		output  io.Writer = io.Discard
		cleanup           = func() {}
	)

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, err
		}
		writer, err := NewRotatingWriter(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
		if err != nil {
			return nil, nil, err
		}
		output = writer
		cleanup = func() {
			_ = writer.Sync()
			_ = writer.Close()
		}
	}

	if cfg.WriteToStderr {
		if output == io.Discard {
			output = os.Stderr
		} else {
			output = io.MultiWriter(output, os.Stderr)
		}
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	return slog.New(handler), cleanup, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
