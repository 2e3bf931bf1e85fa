package noop

import (
	"context"
	"io"
	"log"
	"time"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
)

type noopStorage struct{}

// NewNoopStorage creates an ObjectStorage that discards uploads. It is used
// when no archive bucket is configured.
func NewNoopStorage() port.ObjectStorage {
	return &noopStorage{}
}

func (s *noopStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	n, _ := io.Copy(io.Discard, input.Body)
	log.Printf("[NOOP STORAGE] discarded %d bytes for %s", n, input.Key)
	return &port.UploadOutput{}, nil
}

func (s *noopStorage) Delete(_ context.Context, _ string) error {
	return nil
}

func (s *noopStorage) PresignedURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", domain.ErrNotFound
}

func (s *noopStorage) Enabled() bool {
	return false
}
