// Package blob stores opaque binary payloads outside the document store,
// addressed by a blob key.
package blob

import (
	"context"
	"io"
)

// ProgressFunc receives the transfer percentage, 0 to 100. Implementations
// guarantee the values are monotonically non-decreasing.
type ProgressFunc func(percent int)

// Store is the blob backend the transfer pipeline talks to.
type Store interface {
	// Put streams a payload to the given key, reporting progress as bytes
	// move. The context deadline bounds the whole transfer.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, onProgress ProgressFunc) error

	// URL returns a retrieval URL for a stored blob.
	URL(ctx context.Context, key string) (string, error)

	// Delete removes a blob.
	Delete(ctx context.Context, key string) error
}
