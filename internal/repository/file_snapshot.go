package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSnapshotStore keeps each snapshot as <dir>/<key>.json. Writes go to a
// temporary file that is renamed into place.
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) *FileSnapshotStore {
	return &FileSnapshotStore{dir: dir}
}

func (s *FileSnapshotStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", key, err)
	}
	return data, nil
}

func (s *FileSnapshotStore) Save(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("replacing snapshot %s: %w", key, err)
	}
	return nil
}
