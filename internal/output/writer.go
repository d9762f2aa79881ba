package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer delivers a fully serialized document to its destination. The
// pipeline renders the complete manifest before calling Write, so a
// single call carries the whole payload.
type Writer interface {
	Write(data []byte) error
}

// StdoutWriter streams output to an io.Writer, os.Stdout by default.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter returns a writer targeting w. A nil w falls back to
// os.Stdout.
func NewStdoutWriter(w io.Writer) *StdoutWriter {
	if w == nil {
		w = os.Stdout
	}

	return &StdoutWriter{out: w}
}

func (sw *StdoutWriter) Write(data []byte) error {
	if _, err := sw.out.Write(data); err != nil {
		return fmt.Errorf("writing to stdout: %w", err)
	}

	return nil
}

// FileWriter places output at a fixed path on disk, creating missing
// parent directories and replacing any existing file atomically.
type FileWriter struct {
	path   string
	perm   os.FileMode
	logger *slog.Logger
}

// FileWriterOption adjusts FileWriter behavior.
type FileWriterOption func(*FileWriter)

// WithPermissions sets the mode bits of the written file. The default
// is 0644.
func WithPermissions(perm os.FileMode) FileWriterOption {
	return func(fw *FileWriter) {
		fw.perm = perm
	}
}

// WithLogger routes overwrite warnings to the given logger instead of
// slog.Default.
func WithLogger(logger *slog.Logger) FileWriterOption {
	return func(fw *FileWriter) {
		fw.logger = logger
	}
}

// NewFileWriter returns a FileWriter for path.
func NewFileWriter(path string, opts ...FileWriterOption) *FileWriter {
	fw := &FileWriter{
		path:   path,
		perm:   0o644,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(fw)
	}

	return fw
}

// Write creates parent directories and replaces the target file in one
// step. Data lands in a temp file in the target directory first and is
// renamed into place, so a crash mid-write never leaves a truncated
// manifest at the output path.
func (fw *FileWriter) Write(data []byte) error {
	dir := filepath.Dir(fw.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if _, err := os.Stat(fw.path); err == nil {
		fw.logger.Warn("overwriting existing file", slog.String("path", fw.path))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fw.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing %s: %w", tmpName, err)
	}

	// CreateTemp opens with 0600; widen to the configured mode before the
	// file becomes visible at its final path.
	if err := tmp.Chmod(fw.perm); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, fw.path); err != nil {
		return fmt.Errorf("replacing %s: %w", fw.path, err)
	}

	tmpName = ""

	return nil
}

// Path returns the output file path.
func (fw *FileWriter) Path() string {
	return fw.path
}
