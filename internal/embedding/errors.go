package embedding

import (
	"errors"
	"fmt"
)

// ErrBatchUnsupported is returned by CachedProvider.EmbedBatch when the wrapped
// provider can only embed one text per call
var ErrBatchUnsupported = errors.New("embedding provider does not support batches")

// EmbeddingError reports that the provider failed for one specific text
type EmbeddingError struct {
	Text  string
	Model string
	Cause error
}

func (e *EmbeddingError) Error() string {
	text := e.Text
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed (model %s) for %q: %v", e.Model, text, e.Cause)
	}
	return fmt.Sprintf("embedding failed (model %s) for %q", e.Model, text)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
