package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists each key as a file under a state directory. This is the
// device-local backing store for single-user installs.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are fixed internal names; Base guards against path separators all
	// the same.
	return filepath.Join(s.dir, filepath.Base(key)+".json")
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
