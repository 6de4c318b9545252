// Package transfer copies winning files into the destination directory.
// Copies preserve the source modification time so later tooling can still
// rank the copies by age, and partial files are removed on failure so a
// failed run never leaves a truncated report behind.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Common errors returned by copy operations
var (
	// ErrSourceNotFound is returned when the source file doesn't exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrDestinationNotWritable is returned when the destination is not writable
	ErrDestinationNotWritable = errors.New("destination not writable")
)

// Options configures the behavior of a copy operation.
type Options struct {
	// BufferSize is the copy buffer size in bytes.
	BufferSize int
}

// DefaultOptions returns sensible defaults for report-sized files.
func DefaultOptions() Options {
	return Options{
		BufferSize: 4 * 1024 * 1024,
	}
}

// Result contains the outcome of a copy operation.
type Result struct {
	Success     bool
	BytesCopied int64
	Duration    time.Duration
}

// Copier performs metadata-preserving file copies.
type Copier struct {
	opts Options
}

func NewCopier(opts Options) *Copier {
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultOptions().BufferSize
	}
	return &Copier{opts: opts}
}

// Copy duplicates src into dstDir under its base name. The destination
// keeps the source's modification time. A failed attempt removes the
// partial file.
func (c *Copier) Copy(src, dstDir string) (*Result, error) {
	result := &Result{}
	start := time.Now()

	srcInfo, err := os.Stat(src)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}

	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return result, fmt.Errorf("%w: %v", ErrDestinationNotWritable, err)
	}

	dst := filepath.Join(dstDir, filepath.Base(src))

	bytesCopied, err := c.copyFile(src, dst)
	if err != nil {
		os.Remove(dst)
		result.Duration = time.Since(start)
		return result, err
	}

	// shutil.copy2 semantics: carry the source mtime over
	if err := os.Chtimes(dst, time.Now(), srcInfo.ModTime()); err != nil {
		os.Remove(dst)
		result.Duration = time.Since(start)
		return result, fmt.Errorf("failed to set destination times: %w", err)
	}

	result.Success = true
	result.BytesCopied = bytesCopied
	result.Duration = time.Since(start)
	return result, nil
}

func (c *Copier) copyFile(src, dst string) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	buf := make([]byte, c.opts.BufferSize)
	bytesCopied, err := io.CopyBuffer(dstFile, srcFile, buf)
	if err != nil {
		dstFile.Close()
		return bytesCopied, fmt.Errorf("copy failed: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return bytesCopied, fmt.Errorf("failed to finalize destination: %w", err)
	}
	return bytesCopied, nil
}
