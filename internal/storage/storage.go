package storage

import (
	"context"
	"io"
)

// Storage persists media blobs. Metadata lives in the database; these
// backends only see opaque object keys.
type Storage interface {
	// Put writes a blob under the given key and returns its public URL
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes a blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
