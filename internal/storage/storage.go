package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Backend reads inputs and writes outputs by key.
type Backend interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, reader io.Reader) error
}

// FilesystemBackend implements Backend on the local filesystem. Keys are
// paths relative to root; absolute keys, or any key when root is empty,
// are used as given.
type FilesystemBackend struct {
	root string
}

// NewFilesystemBackend creates a filesystem backend rooted at root.
func NewFilesystemBackend(root string) *FilesystemBackend {
	return &FilesystemBackend{root: root}
}

func (f *FilesystemBackend) path(key string) string {
	if f.root == "" || filepath.IsAbs(key) {
		return filepath.Clean(key)
	}
	return filepath.Join(f.root, key)
}

// Get opens the file stored under key.
func (f *FilesystemBackend) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath := f.path(key)
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fullPath, err)
	}
	return file, nil
}

// Put stores the contents of reader under key. Data is written to a
// temporary file in the same directory and renamed into place, so a failed
// write never leaves a truncated file at key.
func (f *FilesystemBackend) Put(ctx context.Context, key string, reader io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath := f.path(key)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := fmt.Sprintf("%s.%s.tmp", fullPath, uuid.NewString())
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", tmpPath, err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write to file %s: %w", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", fullPath, err)
	}
	return nil
}
