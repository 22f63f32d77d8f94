package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// MemoryStorage is an in-process object store used in tests.
type MemoryStorage struct {
	mu            sync.RWMutex
	blobs         map[string][]byte
	publicBaseURL string
	basePath      string

	// FailPaths makes Store fail for paths ending in one of the listed
	// suffixes, simulating a partial upload failure. Stored paths carry
	// generated prefixes, so matching is by suffix.
	FailPaths map[string]bool
}

func NewMemoryStorage(publicBaseURL string) *MemoryStorage {
	base := strings.TrimRight(publicBaseURL, "/")

	basePath := ""
	if u, err := url.Parse(base); err == nil {
		basePath = strings.Trim(u.Path, "/")
	}

	return &MemoryStorage{
		blobs:         make(map[string][]byte),
		publicBaseURL: base,
		basePath:      basePath,
		FailPaths:     make(map[string]bool),
	}
}

// normalize accepts both storage paths and paths recovered from public
// URLs, which carry the base URL's own path segment.
func (s *MemoryStorage) normalize(path string) string {
	path = strings.TrimLeft(path, "/")
	if s.basePath != "" && strings.HasPrefix(path, s.basePath+"/") {
		path = strings.TrimPrefix(path, s.basePath+"/")
	}
	return path
}

func (s *MemoryStorage) Store(_ context.Context, blob []byte, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = s.normalize(path)
	for suffix, fail := range s.FailPaths {
		if fail && strings.HasSuffix(path, suffix) {
			return "", fmt.Errorf("upload failed for %s", path)
		}
	}
	s.blobs[path] = append([]byte(nil), blob...)
	return s.publicBaseURL + "/" + path, nil
}

func (s *MemoryStorage) RemoveByPath(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, s.normalize(path))
	return nil
}

// Has reports whether a blob exists at the given path.
func (s *MemoryStorage) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[s.normalize(path)]
	return ok
}

// Len returns the number of stored blobs.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
