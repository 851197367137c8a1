package driven

import (
	"context"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

// InputWatcher reports changes to an input file.
type InputWatcher interface {
	// Watch streams changes until ctx is cancelled, then closes the channel.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases the underlying watch handle. It is idempotent.
	Close() error
}
