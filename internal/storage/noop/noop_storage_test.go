package noop_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/domain"
	"beachtrack/internal/port"
	"beachtrack/internal/storage/noop"
)

func TestNoopStorage(t *testing.T) {
	ctx := context.Background()
	store := noop.NewNoopStorage()

	out, err := store.Upload(ctx, port.UploadInput{Key: "k", Body: strings.NewReader("%PDF")})
	require.NoError(t, err)
	assert.Empty(t, out.Key)

	assert.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, store.Enabled())

	_, err = store.PresignedURL(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
