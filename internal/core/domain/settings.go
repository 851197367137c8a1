package domain

const unknownDescription = "Unknown"

// StorageBackend selects where document sessions are kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageMemory keeps sessions for the lifetime of the process.
	StorageMemory StorageBackend = "memory"

	// StorageSQLite persists sessions across restarts.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageMemory:
		return "In-memory (sessions end with the process)"
	case StorageSQLite:
		return "SQLite (sessions survive restarts)"
	default:
		return unknownDescription
	}
}

// Settings is the resolved application configuration.
type Settings struct {
	// OutputDir is where saved documents are written.
	OutputDir string

	// Storage selects the session store.
	Storage StorageBackend

	// StorageDir holds the SQLite database when Storage is sqlite.
	StorageDir string

	// Author is the default document author.
	Author string

	// Styles overrides built-in style buckets.
	Styles StyleOverrides
}

// DefaultSettings returns settings used when no configuration exists.
func DefaultSettings() Settings {
	return Settings{
		OutputDir: ".",
		Storage:   StorageMemory,
	}
}
