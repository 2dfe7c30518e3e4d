package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes media under a directory served as /uploads.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

func (s *LocalStore) Save(_ context.Context, kind string, data []byte, mimeType string) (string, error) {
	key := objectKey(kind, mimeType)
	dst := filepath.Join(s.Dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	return "/uploads/" + key, nil
}
