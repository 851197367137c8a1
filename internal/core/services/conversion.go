package services

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
	"github.com/custodia-labs/docwright/internal/core/ports/driving"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// ConversionService runs one-shot conversions: normalise, map, build.
type ConversionService struct {
	parser   driven.BlockParser
	mapper   *ContentMapper
	registry driven.NormaliserRegistry
	builders driven.BuilderFactory
	styles   domain.StyleOverrides
}

// NewConversionService creates a new conversion service.
func NewConversionService(
	parser driven.BlockParser,
	mapper *ContentMapper,
	registry driven.NormaliserRegistry,
	builders driven.BuilderFactory,
) *ConversionService {
	return &ConversionService{
		parser:   parser,
		mapper:   mapper,
		registry: registry,
		builders: builders,
	}
}

// SetBaseStyles sets configured overrides that sit beneath per-call ones.
func (s *ConversionService) SetBaseStyles(styles domain.StyleOverrides) {
	s.styles = styles
}

// ParseMarkdown splits markdown into content items.
func (s *ConversionService) ParseMarkdown(markdown string) []domain.ContentItem {
	if s.parser == nil {
		return nil
	}
	return s.parser.Parse(markdown)
}

// MapContent resolves styles and maps items into document elements.
func (s *ConversionService) MapContent(items []domain.ContentItem, overrides domain.StyleOverrides) []domain.DocumentElement {
	return s.mapper.Map(items, domain.ResolveStyles(s.styles.Layer(overrides)))
}

// Preview normalises raw with the matching normaliser.
func (s *ConversionService) Preview(ctx context.Context, raw *domain.RawDocument) (*driving.Preview, error) {
	if s.registry == nil {
		return nil, domain.ErrNotImplemented
	}
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.URI, err)
	}
	return &driving.Preview{Title: result.Title, Items: result.Items}, nil
}

// Convert normalises raw with the matching normaliser, maps the items and
// writes the finished document to w.
func (s *ConversionService) Convert(
	ctx context.Context,
	raw *domain.RawDocument,
	overrides domain.StyleOverrides,
	meta domain.DocumentMeta,
	w io.Writer,
) (*driving.ConvertResult, error) {
	if s.registry == nil || s.builders == nil {
		return nil, domain.ErrNotImplemented
	}
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.URI, err)
	}
	if meta.Title == "" {
		meta.Title = result.Title
	}

	elements := s.MapContent(result.Items, overrides)
	if err := writeDocument(s.builders, meta, elements, w); err != nil {
		return nil, err
	}

	return &driving.ConvertResult{
		Title:    meta.Title,
		Items:    len(result.Items),
		Elements: len(elements),
	}, nil
}

// SupportedMIMETypes lists the input formats Convert accepts.
func (s *ConversionService) SupportedMIMETypes() []string {
	if s.registry == nil {
		return nil
	}
	return s.registry.SupportedMIMETypes()
}

// writeDocument appends elements to a fresh builder and finalises it.
// The builder is discarded if any append fails.
func writeDocument(
	builders driven.BuilderFactory,
	meta domain.DocumentMeta,
	elements []domain.DocumentElement,
	w io.Writer,
) error {
	builder, err := builders.NewBuilder(meta)
	if err != nil {
		return fmt.Errorf("create builder: %w", err)
	}
	for i := range elements {
		if err := builder.Append(elements[i]); err != nil {
			_ = builder.Discard()
			return fmt.Errorf("append element %d: %w", i, err)
		}
	}
	if err := builder.Finalize(w); err != nil {
		return fmt.Errorf("finalize document: %w", err)
	}
	return nil
}
