package driving

import (
	"context"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

// DocumentService manages document sessions keyed by filename.
// Callers serialise mutations of a single filename.
type DocumentService interface {
	// Create opens a new session. Returns domain.ErrAlreadyExists if the
	// filename already has one.
	Create(ctx context.Context, filename, title, author string) (*domain.Session, error)

	// AddContent maps items and appends them to the session, creating it
	// if needed. Returns the number of elements appended.
	AddContent(ctx context.Context, filename string, items []domain.ContentItem,
		overrides domain.StyleOverrides) (int, error)

	// AddMarkdown parses markdown and appends it like AddContent.
	AddMarkdown(ctx context.Context, filename, markdown string, overrides domain.StyleOverrides) (int, error)

	// Save writes the document and returns its path. The session stays open.
	Save(ctx context.Context, filename string) (string, error)

	// Close saves the document and ends the session.
	Close(ctx context.Context, filename string) (string, error)

	// Discard ends the session without writing.
	Discard(ctx context.Context, filename string) error

	// Get returns the session for filename.
	Get(ctx context.Context, filename string) (*domain.Session, error)

	// List returns all open sessions.
	List(ctx context.Context) ([]domain.Session, error)
}
