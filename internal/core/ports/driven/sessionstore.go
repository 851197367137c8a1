package driven

import (
	"context"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

// SessionStore persists open document sessions keyed by filename.
type SessionStore interface {
	// Save stores or updates a session.
	Save(ctx context.Context, session domain.Session) error

	// Get retrieves a session by filename.
	// Returns domain.ErrNotFound if no session exists.
	Get(ctx context.Context, filename string) (*domain.Session, error)

	// Delete removes a session. Deleting an unknown filename is not an error.
	Delete(ctx context.Context, filename string) error

	// List returns all sessions ordered by creation time.
	List(ctx context.Context) ([]domain.Session, error)
}
