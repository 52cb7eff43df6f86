// Package output stores rendered report documents.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink persists a finished document under name and returns where it was stored.
type Sink interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}

type Directory struct {
	path string
}

func NewDirectory(path string) (*Directory, error) {
	if path == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Directory{path: path}, nil
}

func (d *Directory) Path() string {
	return d.path
}

// Store writes through a temporary file in the same directory and renames it
// into place, so a failed write never leaves a partial document behind.
func (d *Directory) Store(_ context.Context, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid document name %q", name)
	}

	tmp, err := os.CreateTemp(d.path, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close document: %w", err)
	}

	target := filepath.Join(d.path, name)
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("failed to move document into place: %w", err)
	}
	return target, nil
}
