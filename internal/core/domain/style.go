package domain

import (
	"fmt"
	"strings"
)

// StyleKey names a style bucket. The set is closed; loose string names
// are accepted only through ParseStyleKey at the edges.
type StyleKey int

// Style buckets.
const (
	StyleHeading1 StyleKey = iota + 1
	StyleHeading2
	StyleHeading3
	StyleHeading4
	StyleParagraph
	StyleBullets
	StyleOrdered
	StyleBlockquote
)

// StyleKeys lists every bucket in display order.
var StyleKeys = []StyleKey{
	StyleHeading1,
	StyleHeading2,
	StyleHeading3,
	StyleHeading4,
	StyleParagraph,
	StyleBullets,
	StyleOrdered,
	StyleBlockquote,
}

// IsValid returns true if the key names a bucket.
func (k StyleKey) IsValid() bool {
	return k >= StyleHeading1 && k <= StyleBlockquote
}

// String returns the configuration name of the key.
func (k StyleKey) String() string {
	switch k {
	case StyleHeading1:
		return "heading1"
	case StyleHeading2:
		return "heading2"
	case StyleHeading3:
		return "heading3"
	case StyleHeading4:
		return "heading4"
	case StyleParagraph:
		return "paragraph"
	case StyleBullets:
		return "bullets"
	case StyleOrdered:
		return "ordered"
	case StyleBlockquote:
		return "blockquote"
	default:
		return unknownDescription
	}
}

// ParseStyleKey maps a configuration name to a StyleKey.
func ParseStyleKey(name string) (StyleKey, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, k := range StyleKeys {
		if k.String() == normalized {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: style key %q", ErrInvalidInput, name)
}

// HeadingStyleKey returns the bucket for a heading level.
// Only levels 1-4 have a bucket.
func HeadingStyleKey(level int) (StyleKey, bool) {
	switch level {
	case 1:
		return StyleHeading1, true
	case 2:
		return StyleHeading2, true
	case 3:
		return StyleHeading3, true
	case 4:
		return StyleHeading4, true
	default:
		return 0, false
	}
}

// ElementStyle is a named style bucket.
type ElementStyle struct {
	FontName     string  `json:"fontName,omitempty" toml:"font_name,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty" toml:"font_size,omitempty"`
	Bold         bool    `json:"bold,omitempty" toml:"bold,omitempty"`
	Italic       bool    `json:"italic,omitempty" toml:"italic,omitempty"`
	Color        string  `json:"color,omitempty" toml:"color,omitempty"`
	BorderBottom bool    `json:"borderBottom,omitempty" toml:"border_bottom,omitempty"`
}

// Merge returns the style with every field set in f taking precedence.
func (s ElementStyle) Merge(f *Format) ElementStyle {
	if f == nil {
		return s
	}
	if f.FontName != "" {
		s.FontName = f.FontName
	}
	if f.FontSize > 0 {
		s.FontSize = f.FontSize
	}
	if f.Bold != nil {
		s.Bold = *f.Bold
	}
	if f.Italic != nil {
		s.Italic = *f.Italic
	}
	if f.Color != "" {
		s.Color = f.Color
	}
	if f.BorderBottom != nil {
		s.BorderBottom = *f.BorderBottom
	}
	return s
}

// DefaultFontName is the font used by every built-in bucket.
const DefaultFontName = "Calibri"

// Built-in bucket defaults.
var (
	DefaultHeading1Style = ElementStyle{
		FontName: DefaultFontName, FontSize: 24, Bold: true, Color: "2E74B5", BorderBottom: true,
	}
	DefaultHeading2Style = ElementStyle{
		FontName: DefaultFontName, FontSize: 20, Bold: true, Color: "2E74B5", BorderBottom: true,
	}
	DefaultHeading3Style = ElementStyle{
		FontName: DefaultFontName, FontSize: 16, Bold: true, Color: "1F4D78",
	}
	DefaultHeading4Style = ElementStyle{
		FontName: DefaultFontName, FontSize: 14, Bold: true, Italic: true, Color: "1F4D78",
	}
	DefaultParagraphStyle  = ElementStyle{FontName: DefaultFontName, FontSize: 11}
	DefaultBulletsStyle    = ElementStyle{FontName: DefaultFontName, FontSize: 11}
	DefaultOrderedStyle    = ElementStyle{FontName: DefaultFontName, FontSize: 11}
	DefaultBlockquoteStyle = ElementStyle{
		FontName: DefaultFontName, FontSize: 11, Italic: true, Color: "595959",
	}
)

// StyleSheet holds one bucket per StyleKey.
type StyleSheet struct {
	Heading1   ElementStyle `json:"heading1"`
	Heading2   ElementStyle `json:"heading2"`
	Heading3   ElementStyle `json:"heading3"`
	Heading4   ElementStyle `json:"heading4"`
	Paragraph  ElementStyle `json:"paragraph"`
	Bullets    ElementStyle `json:"bullets"`
	Ordered    ElementStyle `json:"ordered"`
	Blockquote ElementStyle `json:"blockquote"`
}

// DefaultStyleSheet returns the built-in buckets.
func DefaultStyleSheet() StyleSheet {
	return StyleSheet{
		Heading1:   DefaultHeading1Style,
		Heading2:   DefaultHeading2Style,
		Heading3:   DefaultHeading3Style,
		Heading4:   DefaultHeading4Style,
		Paragraph:  DefaultParagraphStyle,
		Bullets:    DefaultBulletsStyle,
		Ordered:    DefaultOrderedStyle,
		Blockquote: DefaultBlockquoteStyle,
	}
}

// Bucket returns the style for key.
func (s *StyleSheet) Bucket(key StyleKey) ElementStyle {
	if p := s.slot(key); p != nil {
		return *p
	}
	return ElementStyle{}
}

// Set replaces the whole bucket for key.
func (s *StyleSheet) Set(key StyleKey, style ElementStyle) {
	if p := s.slot(key); p != nil {
		*p = style
	}
}

func (s *StyleSheet) slot(key StyleKey) *ElementStyle {
	switch key {
	case StyleHeading1:
		return &s.Heading1
	case StyleHeading2:
		return &s.Heading2
	case StyleHeading3:
		return &s.Heading3
	case StyleHeading4:
		return &s.Heading4
	case StyleParagraph:
		return &s.Paragraph
	case StyleBullets:
		return &s.Bullets
	case StyleOrdered:
		return &s.Ordered
	case StyleBlockquote:
		return &s.Blockquote
	default:
		return nil
	}
}

// StyleOverrides is a partial style sheet supplied by a caller.
type StyleOverrides map[StyleKey]ElementStyle

// Layer returns o with every bucket in top replacing the one in o.
// Neither map is modified.
func (o StyleOverrides) Layer(top StyleOverrides) StyleOverrides {
	if len(top) == 0 {
		return o
	}
	out := make(StyleOverrides, len(o)+len(top))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range top {
		out[k] = v
	}
	return out
}

// ParseStyleOverrides converts loosely keyed input (JSON, TOML, MCP) into
// StyleOverrides. Unknown keys are rejected.
func ParseStyleOverrides(raw map[string]ElementStyle) (StyleOverrides, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(StyleOverrides, len(raw))
	for name, style := range raw {
		key, err := ParseStyleKey(name)
		if err != nil {
			return nil, err
		}
		out[key] = style
	}
	return out, nil
}

// ResolveStyles layers overrides over the built-in defaults. Each key
// present in overrides replaces the whole bucket.
func ResolveStyles(overrides StyleOverrides) StyleSheet {
	sheet := DefaultStyleSheet()
	for key, style := range overrides {
		sheet.Set(key, style)
	}
	return sheet
}
