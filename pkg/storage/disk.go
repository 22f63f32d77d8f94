package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage writes blobs under a root directory and serves them from a
// public base URL (the directory is exposed by a static file server).
type DiskStorage struct {
	root          string
	publicBaseURL string
	basePath      string
}

func NewDiskStorage(root, publicBaseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	base := strings.TrimRight(publicBaseURL, "/")

	// Paths recovered from public URLs carry the base URL's own path
	// segment; remember it so RemoveByPath accepts both forms.
	basePath := ""
	if u, err := url.Parse(base); err == nil {
		basePath = strings.Trim(u.Path, "/")
	}

	return &DiskStorage{
		root:          root,
		publicBaseURL: base,
		basePath:      basePath,
	}, nil
}

func (s *DiskStorage) Store(_ context.Context, blob []byte, path string) (string, error) {
	clean, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(clean, blob, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", path, err)
	}
	return s.publicBaseURL + "/" + strings.TrimLeft(path, "/"), nil
}

func (s *DiskStorage) RemoveByPath(_ context.Context, path string) error {
	clean, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob %s: %w", path, err)
	}
	return nil
}

// resolve rejects paths that would escape the storage root.
func (s *DiskStorage) resolve(path string) (string, error) {
	path = strings.TrimLeft(path, "/")
	if s.basePath != "" && strings.HasPrefix(path, s.basePath+"/") {
		path = strings.TrimPrefix(path, s.basePath+"/")
	}

	clean := filepath.Join(s.root, filepath.Clean("/"+path))
	if !strings.HasPrefix(clean, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage path: %s", path)
	}
	return clean, nil
}
