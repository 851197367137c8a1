package driven

import (
	"io"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

// DocumentBuilder accumulates elements and serialises them once.
// After Finalize or Discard every method returns domain.ErrBuilderClosed.
type DocumentBuilder interface {
	// Append adds one element at the end of the document body.
	Append(element domain.DocumentElement) error

	// Finalize writes the complete document to w and closes the builder.
	Finalize(w io.Writer) error

	// Discard releases the builder without writing anything.
	Discard() error
}

// BuilderFactory creates document builders.
type BuilderFactory interface {
	// NewBuilder returns an empty builder for a document with meta.
	NewBuilder(meta domain.DocumentMeta) (DocumentBuilder, error)

	// Extension returns the file extension of produced documents.
	Extension() string
}
