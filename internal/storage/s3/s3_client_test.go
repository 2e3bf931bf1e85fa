package s3_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"beachtrack/internal/config"
	"beachtrack/internal/storage/s3"
)

func TestNewS3Client_RequiresBucket(t *testing.T) {
	_, err := s3.NewS3Client(context.Background(), &config.S3Config{Region: "us-east-1"})

	assert.Error(t, err)
}

func TestNewS3Client_StaticCredentials(t *testing.T) {
	store, err := s3.NewS3Client(context.Background(), &config.S3Config{
		Region:    "us-east-1",
		Bucket:    "beach-archive",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})

	assert.NoError(t, err)
	assert.True(t, store.Enabled())
}
