package frontend

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/emblem/pkg/fsutil"
	"github.com/yaklabco/emblem/pkg/source"
)

// File error kinds for categorization via errors.Is.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")
)

// FileResult is the outcome of compiling a file on disk.
type FileResult struct {
	*Result

	// Path is the file that was compiled.
	Path string

	// Info is the source's state when it was read.
	Info *fsutil.FileInfo
}

// CompileFile reads path and runs the pipeline over it.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := c.CompileSource(ctx, source.NewFile(path, string(content)))
	if err != nil {
		return nil, err
	}
	return &FileResult{Result: result, Path: path, Info: info}, nil
}

// categorizeError wraps a read error with its kind.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
