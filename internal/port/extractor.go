package port

import (
	"context"

	"refinery/internal/domain"
)

// TextExtractor converts a file on disk into plain text using the strategy
// for the given content kind. Any temporary artifact an extraction creates
// is deleted before it returns, on every exit path.
type TextExtractor interface {
	Extract(ctx context.Context, path string, kind domain.ContentKind) (string, error)
}
