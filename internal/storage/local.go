package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes blobs to a directory on disk. Suitable for
// development and single-node deployments.
type LocalStorage struct {
	dir       string
	publicURL string
}

// NewLocalStorage creates the storage directory if needed
func NewLocalStorage(dir, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{
		dir:       dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// Put writes the blob to <dir>/<key>
func (s *LocalStorage) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes the blob from disk
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
