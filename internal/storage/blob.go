package storage

import "context"

// BlobStore is the opaque file store for group assignments: bytes in,
// durable URL out. Assumed durable once Upload returns without error.
type BlobStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}
