package record

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores the record as the sole content of one text file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend bound to path. The file is created on first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file location.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Read(_ context.Context) (string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read %s: %w", b.path, err)
	}
	return string(data), nil
}

// Write truncates the file and writes content. Concurrent writers are not
// serialized; the last completed write wins.
func (b *FileBackend) Write(_ context.Context, content string) error {
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	if err := os.WriteFile(b.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}
