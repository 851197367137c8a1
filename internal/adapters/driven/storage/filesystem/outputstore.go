// Package filesystem writes finished documents to a local directory.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Ensure OutputStore implements the interface.
var _ driven.OutputStore = (*OutputStore)(nil)

// OutputStore writes documents under a fixed directory.
type OutputStore struct {
	dir string
}

// NewOutputStore creates an output store rooted at dir, creating it if
// needed. An empty dir means the current working directory.
func NewOutputStore(dir string) (*OutputStore, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &OutputStore{dir: abs}, nil
}

// Dir returns the absolute output directory.
func (s *OutputStore) Dir() string {
	return s.dir
}

// Write stores data as filename inside the output directory. The data is
// written to a temp file in the same directory and renamed into place.
// Filenames may name subdirectories but must stay inside the output dir.
func (s *OutputStore) Write(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.resolve(filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create parent dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename file: %w", err)
	}
	return path, nil
}

func (s *OutputStore) resolve(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: output filename %q", domain.ErrInvalidInput, filename)
	}
	path := filepath.Join(s.dir, name)
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: output filename %q escapes %s", domain.ErrInvalidInput, filename, s.dir)
	}
	return path, nil
}
