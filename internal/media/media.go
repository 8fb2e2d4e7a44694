// Package media is the on-disk blob store backing photo and recording URLs.
// Every issued handle is a file path; releasing a handle removes the file.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes evidence binaries under a single directory
type Store struct {
	dir string
}

// Open prepares the media directory
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put persists a blob and returns its resource handle. The handle name is a
// fresh UUID so batched uploads can never collide.
func (s *Store) Put(data []byte, ext string) (string, error) {
	name := uuid.NewString()
	if ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return path, nil
}

// Release removes the blob behind a handle. Already-removed handles are a
// no-op so release stays idempotent.
func (s *Store) Release(url string) error {
	err := os.Remove(url)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("release blob: %w", err)
	}
	return nil
}
