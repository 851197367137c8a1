package mcp

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driving"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	session   *domain.Session
	sessions  []domain.Session
	added     int
	path      string
	err       error
	items     []domain.ContentItem
	markdown  string
	overrides domain.StyleOverrides
	calls     []string
}

func (m *mockDocumentService) Create(_ context.Context, filename, title, author string) (*domain.Session, error) {
	m.calls = append(m.calls, "create:"+filename)
	if m.err != nil {
		return nil, m.err
	}
	name, err := domain.NormalizeFilename(filename)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Filename: name, Title: title, Author: author}, nil
}

func (m *mockDocumentService) AddContent(
	_ context.Context, filename string, items []domain.ContentItem, overrides domain.StyleOverrides,
) (int, error) {
	m.calls = append(m.calls, "add_content:"+filename)
	m.items = items
	m.overrides = overrides
	return m.added, m.err
}

func (m *mockDocumentService) AddMarkdown(
	_ context.Context, filename, markdown string, overrides domain.StyleOverrides,
) (int, error) {
	m.calls = append(m.calls, "add_markdown:"+filename)
	m.markdown = markdown
	m.overrides = overrides
	return m.added, m.err
}

func (m *mockDocumentService) Save(_ context.Context, filename string) (string, error) {
	m.calls = append(m.calls, "save:"+filename)
	return m.path, m.err
}

func (m *mockDocumentService) Close(_ context.Context, filename string) (string, error) {
	m.calls = append(m.calls, "close:"+filename)
	return m.path, m.err
}

func (m *mockDocumentService) Discard(_ context.Context, filename string) error {
	m.calls = append(m.calls, "discard:"+filename)
	return m.err
}

func (m *mockDocumentService) Get(_ context.Context, filename string) (*domain.Session, error) {
	m.calls = append(m.calls, "get:"+filename)
	return m.session, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Session, error) {
	return m.sessions, m.err
}

// mockConversionService is a mock implementation of driving.ConversionService.
type mockConversionService struct {
	items []domain.ContentItem
}

func (m *mockConversionService) ParseMarkdown(string) []domain.ContentItem {
	return m.items
}

func (m *mockConversionService) MapContent([]domain.ContentItem, domain.StyleOverrides) []domain.DocumentElement {
	return nil
}

func (m *mockConversionService) Preview(context.Context, *domain.RawDocument) (*driving.Preview, error) {
	return &driving.Preview{Items: m.items}, nil
}

func (m *mockConversionService) Convert(
	context.Context, *domain.RawDocument, domain.StyleOverrides, domain.DocumentMeta, io.Writer,
) (*driving.ConvertResult, error) {
	return &driving.ConvertResult{}, nil
}

func (m *mockConversionService) SupportedMIMETypes() []string { return nil }

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	sheet domain.StyleSheet
	err   error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := domain.DefaultSettings()
	return &s, m.err
}

func (m *mockSettingsService) SetOutputDir(string) error { return m.err }

func (m *mockSettingsService) SetStorage(domain.StorageBackend) error { return m.err }

func (m *mockSettingsService) SetAuthor(string) error { return m.err }

func (m *mockSettingsService) SetStyle(domain.StyleKey, domain.ElementStyle) error { return m.err }

func (m *mockSettingsService) StyleSheet() (domain.StyleSheet, error) { return m.sheet, m.err }

func newTestServer(t *testing.T, docs *mockDocumentService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Document: docs, Conversion: &mockConversionService{}})
	require.NoError(t, err)
	return server
}
