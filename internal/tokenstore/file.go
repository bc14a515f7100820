// Package tokenstore provides the durable token storage used by the CLI.
package tokenstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File is a file-backed spotify.TokenStore holding the single serialized
// token record. Writes are atomic (temp file + rename) and the file is
// created with owner-only permissions since it holds a live credential.
type File struct {
	path string
}

// NewFile creates a file-backed store at the given path, creating parent
// directories as needed.
func NewFile(path string) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}
	return &File{path: path}, nil
}

// Load returns the stored record bytes, or nil if no record exists.
func (f *File) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	return data, nil
}

// Save writes the record bytes atomically via a temp file + rename.
func (f *File) Save(ctx context.Context, data []byte) error {
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

// Delete removes the token file. A missing file is not an error.
func (f *File) Delete(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// Path returns the path of the backing file.
func (f *File) Path() string {
	return f.path
}
