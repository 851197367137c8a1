package services

import (
	"strings"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Heading levels accepted by the mapper.
const (
	minHeadingLevel = 1
	maxHeadingLevel = 9
)

// ContentMapper turns content items into document elements.
// It holds no state between calls and is safe for concurrent use.
type ContentMapper struct {
	formatter driven.InlineFormatter
}

// NewContentMapper creates a mapper that splits text with formatter.
func NewContentMapper(formatter driven.InlineFormatter) *ContentMapper {
	return &ContentMapper{formatter: formatter}
}

// Map converts items in order. Items without usable content are skipped.
// An empty input yields an empty, non-nil slice.
func (m *ContentMapper) Map(items []domain.ContentItem, sheet domain.StyleSheet) []domain.DocumentElement {
	elements := make([]domain.DocumentElement, 0, len(items))
	for _, item := range items {
		switch item.EffectiveKind() {
		case domain.ContentHeading:
			if elem, ok := m.heading(item, &sheet); ok {
				elements = append(elements, elem)
			}
		case domain.ContentParagraph:
			if elem, ok := m.paragraph(item, &sheet); ok {
				elements = append(elements, elem)
			}
		case domain.ContentBullets:
			elements = append(elements, m.list(item, domain.ListBullet, sheet.Bucket(domain.StyleBullets))...)
		case domain.ContentOrdered:
			elements = append(elements, m.list(item, domain.ListOrdered, sheet.Bucket(domain.StyleOrdered))...)
		}
	}
	return elements
}

func (m *ContentMapper) heading(item domain.ContentItem, sheet *domain.StyleSheet) (domain.DocumentElement, bool) {
	if item.Text == nil {
		return domain.DocumentElement{}, false
	}
	text := strings.TrimSpace(*item.Text)
	if text == "" {
		return domain.DocumentElement{}, false
	}

	level := minHeadingLevel
	if item.Format != nil && item.Format.Level != 0 {
		level = min(max(item.Format.Level, minHeadingLevel), maxHeadingLevel)
	}

	// Levels 5-9 have no bucket and use only the item's own format.
	var bucket domain.ElementStyle
	if key, ok := domain.HeadingStyleKey(level); ok {
		bucket = sheet.Bucket(key)
	}
	style := bucket.Merge(item.Format)

	return domain.NewElement(domain.ElementHeading, level, m.formatter.Format(text), style), true
}

func (m *ContentMapper) paragraph(item domain.ContentItem, sheet *domain.StyleSheet) (domain.DocumentElement, bool) {
	if item.Text == nil {
		return domain.DocumentElement{}, false
	}

	key := domain.StyleParagraph
	if item.IsBlockquote() {
		key = domain.StyleBlockquote
	}
	style := sheet.Bucket(key).Merge(item.Format)

	switch *item.Text {
	case "":
		return domain.NewEmptyElement(style), true
	case domain.RuleText:
		style.BorderBottom = true
		return domain.NewEmptyElement(style), true
	}
	return domain.NewElement(domain.ElementParagraph, 0, m.formatter.Format(*item.Text), style), true
}

// list emits one element per non-blank entry. The first carries
// ListStart so numbering restarts.
func (m *ContentMapper) list(item domain.ContentItem, kind domain.ListKind, bucket domain.ElementStyle) []domain.DocumentElement {
	style := bucket.Merge(item.Format)

	var elements []domain.DocumentElement
	for _, entry := range item.Items {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		start := len(elements) == 0
		elements = append(elements, domain.NewListElement(kind, m.formatter.Format(entry), style, start))
	}
	return elements
}
