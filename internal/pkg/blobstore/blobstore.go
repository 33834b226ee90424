package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no blob has been saved under the key
// yet, which is the normal first-run outcome.
var ErrNotFound = errors.New("blob not found")

// BlobStore is a minimal key-value blob store used for best-effort snapshot
// persistence. In-memory state stays authoritative; a failing Save must never
// affect the caller's data.
type BlobStore interface {
	// Load retrieves the blob stored under key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Close releases any underlying resources.
	Close() error
}
