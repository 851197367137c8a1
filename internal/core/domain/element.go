package domain

// ElementKind identifies a document element rendered by a builder.
type ElementKind int

// Element kinds.
const (
	ElementParagraph ElementKind = iota
	ElementHeading
	ElementBulletItem
	ElementOrderedItem
)

// String returns the string representation.
func (k ElementKind) String() string {
	switch k {
	case ElementParagraph:
		return "paragraph"
	case ElementHeading:
		return "heading"
	case ElementBulletItem:
		return "bullet"
	case ElementOrderedItem:
		return "ordered"
	default:
		return unknownDescription
	}
}

// ListKind selects the numbering of a list element.
type ListKind int

// List kinds.
const (
	ListBullet ListKind = iota
	ListOrdered
)

// Run is a text segment with resolved character formatting.
type Run struct {
	TextSegment

	FontName string  `json:"fontName,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// DocumentElement is one paragraph-level unit handed to a DocumentBuilder.
type DocumentElement struct {
	// Kind selects paragraph, heading or list-item rendering.
	Kind ElementKind `json:"kind"`

	// Level is the heading depth (1-9); zero for other kinds.
	Level int `json:"level,omitempty"`

	// Runs is never empty; spacers and rules carry one empty run.
	Runs []Run `json:"runs"`

	// BorderBottom draws a rule under the paragraph.
	BorderBottom bool `json:"borderBottom,omitempty"`

	// ListStart marks the first item of a list so numbering restarts.
	ListStart bool `json:"listStart,omitempty"`
}

// Text returns the plain text of the element.
func (e DocumentElement) Text() string {
	segs := make([]TextSegment, len(e.Runs))
	for i := range e.Runs {
		segs[i] = e.Runs[i].TextSegment
	}
	return PlainText(segs)
}

// IsEmpty reports whether the element renders no visible text.
func (e DocumentElement) IsEmpty() bool {
	for i := range e.Runs {
		if e.Runs[i].Text != "" {
			return false
		}
	}
	return true
}

// NewElement builds a paragraph or heading element. Segment bold/italic
// is OR-ed with the style; font, size and colour come from the style.
func NewElement(kind ElementKind, level int, segments []TextSegment, style ElementStyle) DocumentElement {
	return DocumentElement{
		Kind:         kind,
		Level:        level,
		Runs:         styleRuns(segments, style),
		BorderBottom: style.BorderBottom,
	}
}

// NewListElement builds one list item element.
func NewListElement(kind ListKind, segments []TextSegment, style ElementStyle, start bool) DocumentElement {
	elemKind := ElementBulletItem
	if kind == ListOrdered {
		elemKind = ElementOrderedItem
	}
	return DocumentElement{
		Kind:      elemKind,
		Runs:      styleRuns(segments, style),
		ListStart: start,
	}
}

// NewEmptyElement builds a paragraph with a single empty run. Only the
// spacing and border attributes of the style are kept.
func NewEmptyElement(style ElementStyle) DocumentElement {
	return DocumentElement{
		Kind:         ElementParagraph,
		Runs:         []Run{{FontSize: style.FontSize}},
		BorderBottom: style.BorderBottom,
	}
}

func styleRuns(segments []TextSegment, style ElementStyle) []Run {
	if len(segments) == 0 {
		segments = []TextSegment{{}}
	}
	runs := make([]Run, len(segments))
	for i, seg := range segments {
		seg.Bold = seg.Bold || style.Bold
		seg.Italic = seg.Italic || style.Italic
		runs[i] = Run{
			TextSegment: seg,
			FontName:    style.FontName,
			FontSize:    style.FontSize,
			Color:       style.Color,
		}
	}
	return runs
}
