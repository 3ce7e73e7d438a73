package port

import (
	"context"
	"io"
	"time"
)

// ArchiveObject is a rendered document written to the invoice archive.
type ArchiveObject struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

// ObjectStorage is the bucket that keeps archived invoice PDFs. Keys are
// derived from the invoice series and number, so re-archiving overwrites.
type ObjectStorage interface {
	Put(ctx context.Context, bucket string, obj ArchiveObject) error
	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, bucket, key string) error
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
