package driving

import "github.com/custodia-labs/docwright/internal/core/domain"

// SettingsService reads and updates persisted application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.Settings, error)

	// SetOutputDir changes where documents are written.
	SetOutputDir(dir string) error

	// SetStorage selects the session storage backend.
	SetStorage(backend domain.StorageBackend) error

	// SetAuthor sets the default document author.
	SetAuthor(author string) error

	// SetStyle replaces one style bucket.
	SetStyle(key domain.StyleKey, style domain.ElementStyle) error

	// StyleSheet returns the configured styles layered over the defaults.
	StyleSheet() (domain.StyleSheet, error)
}
