package storage

import (
	"context"
	"io"
)

// Storage abstracts the photo file backend. The local implementation keeps
// files on disk and serves them through the HTTP server; a cloud
// implementation would return provider URLs instead.
type Storage interface {
	// Save writes the file under key and returns its public URL
	Save(ctx context.Context, key string, r io.Reader) (string, error)

	// Delete removes the file stored under key
	Delete(ctx context.Context, key string) error

	// Exists checks whether a file exists and returns its size
	Exists(ctx context.Context, key string) (bool, int64, error)

	// List returns the keys stored under a prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// URL returns the public URL for an existing key
	URL(key string) string
}
