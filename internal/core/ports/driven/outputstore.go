package driven

import "context"

// OutputStore writes finished documents.
type OutputStore interface {
	// Write stores data under filename and returns the final path.
	// A partially written file is never left at the final path.
	Write(ctx context.Context, filename string, data []byte) (string, error)

	// Dir returns the directory documents are written to.
	Dir() string
}
