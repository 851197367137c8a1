// Package docx reads word-processing documents back into content items so
// an existing file can be restyled.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
	"github.com/custodia-labs/docwright/internal/inline"
	"github.com/custodia-labs/docwright/internal/normalisers/markdown"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// MIMEType is the content type of a word-processing package.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise reads headings, list items, paragraphs, rules and spacers
// from word/document.xml. Bold, italic and hyperlinks are re-encoded as
// inline markers.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a docx package: %v", domain.ErrInvalidInput, err)
	}

	body, err := readPart(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: missing word/document.xml", domain.ErrInvalidInput)
	}

	rels, err := readPart(reader, "word/_rels/document.xml.rels")
	if err != nil {
		return nil, err
	}
	numbering, err := readPart(reader, "word/numbering.xml")
	if err != nil {
		return nil, err
	}

	paras, err := parseBody(body, parseLinks(rels))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	items := toItems(paras, parseOrderedNums(numbering))

	return &driven.NormaliseResult{
		Items: items,
		Title: extractTitle(reader, items, raw.URI),
	}, nil
}

// readPart returns nil without error when the part is absent.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", domain.ErrInvalidInput, name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidInput, name, err)
		}
		return content, nil
	}
	return nil, nil
}

// paragraph is one w:p as read from the body.
type paragraph struct {
	style    string
	numID    string
	border   bool
	segments []domain.TextSegment

	// linkOpened is set until the first text of a hyperlink is added.
	linkOpened bool
}

func (p *paragraph) headingLevel() int {
	rest, ok := strings.CutPrefix(p.style, "Heading")
	if !ok {
		return 0
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 || level > 9 {
		return 0
	}
	return level
}

func (p *paragraph) add(text string, bold, italic bool, link string) {
	seg := domain.TextSegment{Text: text, Bold: bold, Italic: italic, Link: link}
	opened := p.linkOpened && link != ""
	p.linkOpened = false
	if last := len(p.segments) - 1; last >= 0 {
		seg.NewLink = opened && p.segments[last].Link == link
		if !p.segments[last].Break && p.segments[last].SameStyle(seg) {
			p.segments[last].Text += text
			return
		}
	}
	p.segments = append(p.segments, seg)
}

func (p *paragraph) lineBreak() {
	if len(p.segments) == 0 {
		p.segments = append(p.segments, domain.TextSegment{})
	}
	p.segments[len(p.segments)-1].Break = true
}

func (p *paragraph) text() string {
	return domain.PlainText(p.segments)
}

// parseBody streams the body so runs and hyperlinks keep document order.
func parseBody(content []byte, links map[string]string) ([]paragraph, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		paras  []paragraph
		cur    *paragraph
		inPPr  bool
		inRun  bool
		inRPr  bool
		inText bool
		bold   bool
		italic bool
		link   string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paras, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur = &paragraph{}
			case "pPr":
				inPPr = true
			case "pStyle":
				if cur != nil && inPPr {
					cur.style = attr(t, "val")
				}
			case "numId":
				if cur != nil && inPPr {
					cur.numID = attr(t, "val")
				}
			case "bottom":
				if cur != nil && inPPr {
					cur.border = attr(t, "val") != "none"
				}
			case "hyperlink":
				link = links[attr(t, "id")]
				if cur != nil {
					cur.linkOpened = true
				}
			case "r":
				inRun, bold, italic = true, false, false
			case "rPr":
				inRPr = inRun
			case "b":
				if inRPr {
					bold = toggle(t)
				}
			case "i":
				if inRPr {
					italic = toggle(t)
				}
			case "t":
				inText = inRun
			case "tab":
				if cur != nil && inRun {
					cur.add("\t", bold, italic, link)
				}
			case "br", "cr":
				if cur != nil && inRun {
					cur.lineBreak()
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if cur != nil {
					paras = append(paras, *cur)
				}
				cur = nil
			case "pPr":
				inPPr = false
			case "hyperlink":
				link = ""
			case "r":
				inRun = false
			case "rPr":
				inRPr = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && cur != nil {
				cur.add(string(t), bold, italic, link)
			}
		}
	}
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// toggle reads an on/off property such as <w:b/> or <w:b w:val="0"/>.
func toggle(el xml.StartElement) bool {
	switch attr(el, "val") {
	case "0", "false", "off", "none":
		return false
	default:
		return true
	}
}

// toItems folds paragraphs into content items. Consecutive list
// paragraphs with the same numbering id form one list.
func toItems(paras []paragraph, ordered map[string]bool) []domain.ContentItem {
	var items []domain.ContentItem
	var list *domain.ContentItem
	listID := ""

	flush := func() {
		if list != nil && len(list.Items) > 0 {
			items = append(items, *list)
		}
		list = nil
		listID = ""
	}

	for i := range paras {
		p := &paras[i]

		if p.numID != "" && p.numID != "0" {
			if list == nil || p.numID != listID {
				flush()
				kind := domain.ContentBullets
				if ordered[p.numID] {
					kind = domain.ContentOrdered
				}
				list = &domain.ContentItem{Kind: kind}
				listID = p.numID
			}
			if text := strings.TrimSpace(inline.Render(p.segments)); text != "" {
				list.Items = append(list.Items, text)
			}
			continue
		}
		flush()

		if level := p.headingLevel(); level > 0 {
			if text := strings.TrimSpace(headingText(p.segments)); text != "" {
				items = append(items, domain.Heading(level, text))
			}
			continue
		}

		if strings.TrimSpace(p.text()) == "" {
			if p.border {
				items = append(items, domain.Rule())
			} else {
				items = append(items, domain.Spacer())
			}
			continue
		}
		items = append(items, domain.Paragraph(strings.TrimSpace(inline.Render(p.segments))))
	}
	flush()

	return trimSpacers(items)
}

// headingText drops emphasis, which heading styles apply to every run.
// Links are kept.
func headingText(segments []domain.TextSegment) string {
	plain := make([]domain.TextSegment, len(segments))
	for i, seg := range segments {
		plain[i] = domain.TextSegment{Text: seg.Text, Link: seg.Link, NewLink: seg.NewLink, Break: seg.Break}
	}
	return inline.Render(plain)
}

// trimSpacers removes leading and trailing spacers.
func trimSpacers(items []domain.ContentItem) []domain.ContentItem {
	isSpacer := func(it domain.ContentItem) bool {
		return it.Kind == domain.ContentParagraph && it.Text != nil && *it.Text == ""
	}
	for len(items) > 0 && isSpacer(items[0]) {
		items = items[1:]
	}
	for len(items) > 0 && isSpacer(items[len(items)-1]) {
		items = items[:len(items)-1]
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// parseLinks maps hyperlink relationship ids to their targets.
func parseLinks(content []byte) map[string]string {
	links := make(map[string]string)
	if content == nil {
		return links
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(content, &rels); err != nil {
		return links
	}
	for _, rel := range rels.Relationships {
		if strings.HasSuffix(rel.Type, "/hyperlink") {
			links[rel.ID] = rel.Target
		}
	}
	return links
}

type numberingXML struct {
	Abstract []struct {
		ID     string `xml:"abstractNumId,attr"`
		Levels []struct {
			Ilvl   string `xml:"ilvl,attr"`
			NumFmt struct {
				Val string `xml:"val,attr"`
			} `xml:"numFmt"`
		} `xml:"lvl"`
	} `xml:"abstractNum"`
	Nums []struct {
		ID         string `xml:"numId,attr"`
		AbstractID struct {
			Val string `xml:"val,attr"`
		} `xml:"abstractNumId"`
	} `xml:"num"`
}

// parseOrderedNums reports which numbering ids have a non-bullet first
// level. Unknown ids read as bullets.
func parseOrderedNums(content []byte) map[string]bool {
	ordered := make(map[string]bool)
	if content == nil {
		return ordered
	}
	var numbering numberingXML
	if err := xml.Unmarshal(content, &numbering); err != nil {
		return ordered
	}

	formats := make(map[string]string, len(numbering.Abstract))
	for _, abs := range numbering.Abstract {
		for _, lvl := range abs.Levels {
			if lvl.Ilvl == "0" {
				formats[abs.ID] = lvl.NumFmt.Val
			}
		}
	}
	for _, num := range numbering.Nums {
		format, ok := formats[num.AbstractID.Val]
		ordered[num.ID] = ok && format != "bullet" && format != "none"
	}
	return ordered
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// extractTitle prefers the document properties, then the first H1, then
// the filename.
func extractTitle(reader *zip.Reader, items []domain.ContentItem, uri string) string {
	content, err := readPart(reader, "docProps/core.xml")
	if err == nil && content != nil {
		var core coreXML
		if err := xml.Unmarshal(content, &core); err == nil {
			if title := strings.TrimSpace(core.Title); title != "" {
				return title
			}
		}
	}
	return markdown.Title(items, uri)
}
