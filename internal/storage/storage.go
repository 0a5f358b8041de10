// Package storage persists attachment binaries in an S3-compatible blob
// store and hands back stable keys that the rest of the app records in the
// attachments table.
package storage

import (
	"context"
	"io"
)

// Upload is one raw uploaded file, decoupled from the HTTP transport so the
// service layer can be exercised without multipart plumbing.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	ByteSize    int64
}

// BlobRef identifies a stored binary plus the metadata carried forward from
// the original upload.
type BlobRef struct {
	Key         string
	Filename    string
	ContentType string
	ByteSize    int64
}

// BlobStore owns the binary bytes; callers keep only BlobRefs.
type BlobStore interface {
	// CreateAndUpload stores the payload under a fresh key and returns its ref.
	CreateAndUpload(ctx context.Context, up Upload) (BlobRef, error)
	// PresignGet returns a time-limited URL for direct download of a blob.
	PresignGet(ctx context.Context, key string) (string, error)
	// Get streams the blob for proxied delivery. Caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}
