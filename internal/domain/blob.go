package domain

import (
	"context"
	"io"
)

// BlobWriter uploads objects to cold storage (S3-compatible backends).
type BlobWriter interface {
	// Put uploads data in a single request.
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
	// PutMultipart uploads data in parts of partSize bytes, for payloads
	// too large for a single request.
	PutMultipart(ctx context.Context, path string, data io.Reader, partSize int64) error
}
