package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

// ConversionService converts input documents without keeping state.
type ConversionService interface {
	// ParseMarkdown splits markdown into content items.
	ParseMarkdown(markdown string) []domain.ContentItem

	// MapContent resolves styles and maps items into document elements.
	MapContent(items []domain.ContentItem, overrides domain.StyleOverrides) []domain.DocumentElement

	// Preview normalises raw without mapping or writing anything.
	Preview(ctx context.Context, raw *domain.RawDocument) (*Preview, error)

	// Convert normalises raw, maps it and writes the finished document to w.
	// An empty meta title is filled from the detected title.
	Convert(ctx context.Context, raw *domain.RawDocument, overrides domain.StyleOverrides,
		meta domain.DocumentMeta, w io.Writer) (*ConvertResult, error)

	// SupportedMIMETypes lists the input formats Convert accepts.
	SupportedMIMETypes() []string
}

// ConvertResult summarises a conversion.
type ConvertResult struct {
	// Title is the title written into the document properties.
	Title string

	// Items is the number of content items read from the input.
	Items int

	// Elements is the number of document elements written.
	Elements int
}

// Preview is the normalised form of an input.
type Preview struct {
	// Title is the detected title.
	Title string

	// Items are the content items the input normalises to.
	Items []domain.ContentItem
}
