// Package storage abstracts the object store that holds product images.
// The store accepts a blob plus a path and hands back a public URL.
package storage

import (
	"context"
	"net/url"
	"strings"
)

// ObjectStorage is the contract consumed by the entity services. Removal is
// best-effort: callers log failures and move on, they never fail a document
// write because a blob could not be released.
type ObjectStorage interface {
	Store(ctx context.Context, blob []byte, path string) (string, error)
	RemoveByPath(ctx context.Context, path string) error
}

// PathFromURL extracts the storage path from a public URL produced by
// Store. Returns "" if the URL cannot be parsed.
func PathFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimLeft(u.Path, "/")
}
