package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
	"github.com/custodia-labs/docwright/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyOutputDir      = "output.dir"
	keyStorageBackend = "storage.backend"
	keyStorageDir     = "storage.dir"
	keyAuthor         = "document.author"
	keyStylesPrefix   = "styles."
)

// Style field names under styles.<key>.
const (
	fieldFontName     = "font_name"
	fieldFontSize     = "font_size"
	fieldBold         = "bold"
	fieldItalic       = "italic"
	fieldColor        = "color"
	fieldBorderBottom = "border_bottom"
)

var styleFields = []string{
	fieldFontName, fieldFontSize, fieldBold, fieldItalic, fieldColor, fieldBorderBottom,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// LoadSettings reads settings from store, applying defaults for missing or
// invalid values. A style bucket is only overridden when at least one of
// its fields is configured; it then replaces the whole default bucket.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	settings := domain.DefaultSettings()
	if store == nil {
		return settings
	}

	if dir := store.GetString(keyOutputDir); dir != "" {
		settings.OutputDir = dir
	}
	if backend := domain.StorageBackend(strings.ToLower(store.GetString(keyStorageBackend))); backend.IsValid() {
		settings.Storage = backend
	}
	settings.StorageDir = store.GetString(keyStorageDir)
	settings.Author = store.GetString(keyAuthor)

	for _, key := range domain.StyleKeys {
		if style, ok := loadStyle(store, key); ok {
			if settings.Styles == nil {
				settings.Styles = make(domain.StyleOverrides)
			}
			settings.Styles[key] = style
		}
	}
	return settings
}

func loadStyle(store driven.ConfigStore, key domain.StyleKey) (domain.ElementStyle, bool) {
	prefix := keyStylesPrefix + key.String() + "."
	found := false
	for _, field := range styleFields {
		if _, ok := store.Get(prefix + field); ok {
			found = true
			break
		}
	}
	if !found {
		return domain.ElementStyle{}, false
	}

	return domain.ElementStyle{
		FontName:     store.GetString(prefix + fieldFontName),
		FontSize:     store.GetFloat(prefix + fieldFontSize),
		Bold:         store.GetBool(prefix + fieldBold),
		Italic:       store.GetBool(prefix + fieldItalic),
		Color:        store.GetString(prefix + fieldColor),
		BorderBottom: store.GetBool(prefix + fieldBorderBottom),
	}, true
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	settings := LoadSettings(s.configStore)
	return &settings, nil
}

// SetOutputDir changes where documents are written.
func (s *SettingsService) SetOutputDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("%w: output directory is required", domain.ErrInvalidInput)
	}
	return s.set(keyOutputDir, dir)
}

// SetStorage selects the session storage backend.
func (s *SettingsService) SetStorage(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
	return s.set(keyStorageBackend, backend.String())
}

// SetAuthor sets the default document author.
func (s *SettingsService) SetAuthor(author string) error {
	return s.set(keyAuthor, strings.TrimSpace(author))
}

// SetStyle replaces one style bucket. Every field is written so the
// stored bucket no longer inherits from the default.
func (s *SettingsService) SetStyle(key domain.StyleKey, style domain.ElementStyle) error {
	if !key.IsValid() {
		return fmt.Errorf("%w: style key %d", domain.ErrInvalidInput, key)
	}
	if style.FontSize < 0 {
		return fmt.Errorf("%w: negative font size", domain.ErrInvalidInput)
	}

	prefix := keyStylesPrefix + key.String() + "."
	values := []struct {
		field string
		value any
	}{
		{fieldFontName, style.FontName},
		{fieldFontSize, style.FontSize},
		{fieldBold, style.Bold},
		{fieldItalic, style.Italic},
		{fieldColor, style.Color},
		{fieldBorderBottom, style.BorderBottom},
	}
	for _, v := range values {
		if err := s.set(prefix+v.field, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.field, err)
		}
	}
	return nil
}

// StyleSheet returns the configured styles layered over the defaults.
func (s *SettingsService) StyleSheet() (domain.StyleSheet, error) {
	settings, err := s.Get()
	if err != nil {
		return domain.StyleSheet{}, err
	}
	return domain.ResolveStyles(settings.Styles), nil
}

func (s *SettingsService) set(key string, value any) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	return s.configStore.Set(key, value)
}
