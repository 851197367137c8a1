// Package markdown parses a small Markdown grammar into content items.
//
// Recognised blocks are ATX headings (1-6 '#'), flat bullet and ordered
// lists, blockquotes, thematic breaks and paragraphs. Inline markup is
// left in the item text for the inline formatter to resolve later.
package markdown

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Ensure Normaliser implements the interfaces.
var (
	_ driven.Normaliser  = (*Normaliser)(nil)
	_ driven.BlockParser = (*Normaliser)(nil)
)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise parses a markdown document into content items.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	items := Parse(string(raw.Content))
	return &driven.NormaliseResult{
		Items: items,
		Title: Title(items, raw.URI),
	}, nil
}

// Parse splits markdown into content items.
func (n *Normaliser) Parse(markdown string) []domain.ContentItem {
	return Parse(markdown)
}

// Title returns the text of the first level-1 heading, or a title derived
// from the file name in uri.
func Title(items []domain.ContentItem, uri string) string {
	for _, item := range items {
		if item.Kind == domain.ContentHeading && item.Format != nil && item.Format.Level == 1 && item.Text != nil {
			return *item.Text
		}
	}
	return TitleFromURI(uri)
}

// TitleFromURI turns "reports/q1_sales-summary.md" into "q1 sales summary".
func TitleFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
