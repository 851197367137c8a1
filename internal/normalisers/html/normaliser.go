package html

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document into content items.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	root, err := html.Parse(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	c := &converter{}
	c.blocks(root)
	c.flush()

	title := c.title
	if title == "" {
		title = firstHeading(c.items)
	}
	if title == "" {
		title = extractTitle(raw.URI)
	}

	return &driven.NormaliseResult{
		Items: c.items,
		Title: title,
	}, nil
}

// converter accumulates items while walking block-level nodes. Loose
// inline content between blocks is collected into pending and emitted as
// a paragraph at the next block boundary.
type converter struct {
	items   []domain.ContentItem
	pending strings.Builder
	title   string
}

func (c *converter) blocks(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.TextNode:
			c.pending.WriteString(collapseSpace(ch.Data))
		case html.ElementNode:
			c.element(ch)
		case html.DocumentNode:
			c.blocks(ch)
		}
	}
}

func (c *converter) element(n *html.Node) {
	switch n.DataAtom {
	case atom.Title:
		if c.title == "" {
			c.title = cleanText(textContent(n))
		}
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		c.flush()
		if text := cleanText(inlineText(n, false)); text != "" {
			c.items = append(c.items, domain.Heading(headingLevel(n.DataAtom), text))
		}
	case atom.P, atom.Pre:
		c.flush()
		if text := cleanText(inlineText(n, false)); text != "" {
			c.items = append(c.items, domain.Paragraph(text))
		}
	case atom.Ul, atom.Ol:
		c.flush()
		var entries []string
		collectItems(n, &entries)
		if len(entries) == 0 {
			return
		}
		if n.DataAtom == atom.Ol {
			c.items = append(c.items, domain.Ordered(entries...))
		} else {
			c.items = append(c.items, domain.Bullets(entries...))
		}
	case atom.Blockquote:
		c.flush()
		text := strings.Join(strings.Fields(inlineText(n, true)), " ")
		if text != "" {
			c.items = append(c.items, domain.Blockquote(text))
		}
	case atom.Hr:
		c.flush()
		c.items = append(c.items, domain.Rule())
	case atom.Br:
		c.pending.WriteString("\n")
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Img:
	case atom.Html, atom.Head, atom.Body, atom.Div, atom.Section, atom.Article, atom.Main,
		atom.Header, atom.Footer, atom.Nav, atom.Aside, atom.Figure, atom.Table, atom.Tbody,
		atom.Thead, atom.Tr, atom.Td, atom.Th:
		c.flush()
		c.blocks(n)
		c.flush()
	default:
		var sb strings.Builder
		writeInlineElement(&sb, n, false)
		c.pending.WriteString(sb.String())
	}
}

func (c *converter) flush() {
	text := cleanText(c.pending.String())
	c.pending.Reset()
	if text != "" {
		c.items = append(c.items, domain.Paragraph(text))
	}
}

// collectItems appends the text of every li below n. Nested lists are
// flattened into the outer list.
func collectItems(n *html.Node, entries *[]string) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		switch ch.DataAtom {
		case atom.Li:
			if text := cleanText(inlineText(ch, false)); text != "" {
				*entries = append(*entries, text)
			}
			collectItems(ch, entries)
		case atom.Ul, atom.Ol:
			collectItems(ch, entries)
		}
	}
}

// inlineText renders the children of n as inline markup. When
// includeLists is false nested lists are skipped.
func inlineText(n *html.Node, includeLists bool) string {
	var sb strings.Builder
	writeInline(&sb, n, includeLists)
	return sb.String()
}

func writeInline(sb *strings.Builder, n *html.Node, includeLists bool) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.TextNode:
			sb.WriteString(collapseSpace(ch.Data))
		case html.ElementNode:
			writeInlineElement(sb, ch, includeLists)
		}
	}
}

func writeInlineElement(sb *strings.Builder, n *html.Node, includeLists bool) {
	switch n.DataAtom {
	case atom.Strong, atom.B:
		sb.WriteString(wrap("**", inlineText(n, includeLists)))
	case atom.Em, atom.I:
		sb.WriteString(wrap("*", inlineText(n, includeLists)))
	case atom.A:
		inner := inlineText(n, includeLists)
		href := attr(n, "href")
		if href == "" {
			sb.WriteString(inner)
			return
		}
		lead, core, trail := splitSpace(inner)
		if core == "" {
			core = href
		}
		sb.WriteString(lead + "[" + core + "](" + href + ")" + trail)
	case atom.Br:
		sb.WriteString("\n")
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Img:
	case atom.Ul, atom.Ol:
		if includeLists {
			sb.WriteString(" ")
			writeInline(sb, n, includeLists)
			sb.WriteString(" ")
		}
	case atom.P, atom.Div, atom.Li, atom.Blockquote, atom.H1, atom.H2, atom.H3,
		atom.H4, atom.H5, atom.H6, atom.Pre, atom.Tr, atom.Td, atom.Th:
		sb.WriteString(" ")
		writeInline(sb, n, includeLists)
		sb.WriteString(" ")
	default:
		writeInline(sb, n, includeLists)
	}
}

// wrap surrounds the visible part of s with marker, keeping edge
// whitespace outside so the markup still parses.
func wrap(marker, s string) string {
	lead, core, trail := splitSpace(s)
	if core == "" {
		return s
	}
	return lead + marker + core + marker + trail
}

func splitSpace(s string) (lead, core, trail string) {
	trimmed := strings.TrimLeft(s, " \n")
	core = strings.TrimRight(trimmed, " \n")
	return s[:len(s)-len(trimmed)], core, trimmed[len(core):]
}

// collapseSpace replaces each run of HTML whitespace with one space.
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}

// cleanText trims each line produced by <br> and collapses spaces.
func cleanText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			sb.WriteString(ch.Data)
		}
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	default:
		return 6
	}
}

func firstHeading(items []domain.ContentItem) string {
	for _, item := range items {
		if item.Kind == domain.ContentHeading && item.Format != nil && item.Format.Level == 1 && item.Text != nil {
			return *item.Text
		}
	}
	return ""
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
