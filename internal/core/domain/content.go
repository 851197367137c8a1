package domain

// ContentKind identifies the shape of a ContentItem.
type ContentKind string

// Available content kinds.
const (
	// ContentParagraph is a block of running text. Also used for spacers
	// (empty text), blockquotes (italic format) and thematic breaks.
	ContentParagraph ContentKind = "paragraph"

	// ContentHeading is a single-line heading with a level in Format.
	ContentHeading ContentKind = "heading"

	// ContentBullets is an unordered, flat list.
	ContentBullets ContentKind = "bullets"

	// ContentOrdered is a numbered, flat list.
	ContentOrdered ContentKind = "ordered"
)

// IsValid returns true if the content kind is recognised.
func (k ContentKind) IsValid() bool {
	switch k {
	case ContentParagraph, ContentHeading, ContentBullets, ContentOrdered:
		return true
	default:
		return false
	}
}

// IsList returns true for bullets and ordered lists.
func (k ContentKind) IsList() bool {
	return k == ContentBullets || k == ContentOrdered
}

// String returns the string representation.
func (k ContentKind) String() string {
	return string(k)
}

// RuleText is the sentinel paragraph text for a thematic break.
const RuleText = "---"

// ContentItem is an abstract unit of document content, produced either by
// the markdown parser or supplied directly by a caller.
type ContentItem struct {
	// Kind is the item shape. Empty means paragraph.
	Kind ContentKind `json:"type,omitempty"`

	// Text is the body of a paragraph or heading. Nil means absent,
	// which is distinct from an explicit empty spacer.
	Text *string `json:"text,omitempty"`

	// Items holds the entries of a bullets or ordered list.
	Items []string `json:"items,omitempty"`

	// Format carries explicit per-item formatting.
	Format *Format `json:"format,omitempty"`
}

// Format is explicit per-item formatting. Unset fields defer to the
// style bucket.
type Format struct {
	FontName     string  `json:"fontName,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	Bold         *bool   `json:"bold,omitempty"`
	Italic       *bool   `json:"italic,omitempty"`
	Color        string  `json:"color,omitempty"`
	Level        int     `json:"level,omitempty"`
	BorderBottom *bool   `json:"borderBottom,omitempty"`
}

// EffectiveKind returns the kind, defaulting to paragraph when omitted.
func (c ContentItem) EffectiveKind() ContentKind {
	if c.Kind == "" {
		return ContentParagraph
	}
	return c.Kind
}

// IsBlockquote reports whether a paragraph carries the blockquote marker.
func (c ContentItem) IsBlockquote() bool {
	return c.Format != nil && c.Format.Italic != nil && *c.Format.Italic
}

// Paragraph builds a paragraph item.
func Paragraph(text string) ContentItem {
	return ContentItem{Kind: ContentParagraph, Text: &text}
}

// Spacer builds an empty-text paragraph used for vertical whitespace.
func Spacer() ContentItem {
	return Paragraph("")
}

// Rule builds the thematic break sentinel paragraph.
func Rule() ContentItem {
	return Paragraph(RuleText)
}

// Blockquote builds an italic-marked paragraph.
func Blockquote(text string) ContentItem {
	item := Paragraph(text)
	item.Format = &Format{Italic: Bool(true)}
	return item
}

// Heading builds a heading item. Levels 1 and 2 get a bottom border.
func Heading(level int, text string) ContentItem {
	return ContentItem{
		Kind: ContentHeading,
		Text: &text,
		Format: &Format{
			Level:        level,
			BorderBottom: Bool(level <= 2),
		},
	}
}

// Bullets builds an unordered list item.
func Bullets(items ...string) ContentItem {
	return ContentItem{Kind: ContentBullets, Items: items}
}

// Ordered builds a numbered list item.
func Ordered(items ...string) ContentItem {
	return ContentItem{Kind: ContentOrdered, Items: items}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
