package port

import (
	"context"
	"io"
	"time"
)

// UploadInput encapsulates the parameters needed to archive an object.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Key      string
	Location string
}

// ObjectStorage abstracts the archive bucket for uploaded PDFs.
// Implementations are bound to a single bucket at construction.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Enabled reports whether uploads are actually stored.
	Enabled() bool
}
