package port

import "context"

// TextExtractor converts a document binary into line-oriented plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
