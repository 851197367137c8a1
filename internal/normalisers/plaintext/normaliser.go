// Package plaintext turns plain text into paragraphs. It is the fallback
// for every text/* type without a dedicated normaliser.
package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/*",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise splits text into paragraphs at blank lines. Line breaks inside
// a paragraph are kept, and runs of two or more blank lines add spacers
// the same way the markdown parser does.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")
	lines := strings.Split(content, "\n")

	var items []domain.ContentItem
	var block []string
	blanks := 0
	flush := func() {
		if len(block) == 0 {
			return
		}
		items = append(items, domain.Paragraph(strings.Join(block, "\n")))
		block = nil
	}

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			flush()
			blanks++
			continue
		}
		if len(block) == 0 && len(items) > 0 {
			for i := 1; i < blanks; i++ {
				items = append(items, domain.Spacer())
			}
		}
		blanks = 0
		block = append(block, line)
	}
	flush()

	return &driven.NormaliseResult{
		Items: items,
		Title: extractTitleFromMetadataOrURI(raw),
	}, nil
}

// extractTitleFromMetadataOrURI checks metadata for title first, then falls back to URI.
func extractTitleFromMetadataOrURI(raw *domain.RawDocument) string {
	if raw.Metadata != nil {
		if title, ok := raw.Metadata["title"].(string); ok && title != "" {
			return title
		}
	}
	return extractTitle(raw.URI)
}

// extractTitle extracts a human-readable title from a URI.
func extractTitle(uri string) string {
	if uri == "" {
		return ""
	}
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
