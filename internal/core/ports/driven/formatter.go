package driven

import "github.com/custodia-labs/docwright/internal/core/domain"

// InlineFormatter splits one line of inline markup into styled segments.
// It never fails; unrecognised markup is returned as plain text.
type InlineFormatter interface {
	Format(line string) []domain.TextSegment
}

// BlockParser splits markdown into content items. Parsing is total:
// malformed input degrades to paragraphs.
type BlockParser interface {
	Parse(markdown string) []domain.ContentItem
}
