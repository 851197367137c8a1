// Package docx writes document elements as an Office Open XML
// word-processing package.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Ensure the adapter implements the ports.
var (
	_ driven.BuilderFactory  = (*Factory)(nil)
	_ driven.DocumentBuilder = (*Builder)(nil)
)

// Factory creates docx builders.
type Factory struct {
	now func() time.Time
}

// NewFactory creates a builder factory.
func NewFactory() *Factory {
	return &Factory{now: time.Now}
}

// Extension returns the file extension of built documents.
func (f *Factory) Extension() string {
	return domain.DocxExtension
}

// NewBuilder starts an empty document with the given properties.
func (f *Factory) NewBuilder(meta domain.DocumentMeta) (driven.DocumentBuilder, error) {
	now := time.Now
	if f != nil && f.now != nil {
		now = f.now
	}
	return &Builder{
		meta:    meta,
		created: now().UTC(),
		linkIDs: make(map[string]string),
	}, nil
}

// Numbering ids. Bullets share one num; every ordered list gets its own
// num so numbering restarts at 1.
const (
	bulletAbstractID  = 0
	orderedAbstractID = 1
	bulletNumID       = 1
	firstOrderedNumID = 2
)

// Relationship ids below firstLinkRel are taken by fixed parts.
const firstLinkRel = 3

// Builder accumulates the body of one document. It is not safe for
// concurrent use.
type Builder struct {
	meta    domain.DocumentMeta
	created time.Time
	body    bytes.Buffer

	links   []string
	linkIDs map[string]string

	orderedNums int
	closed      bool
}

// Append renders one element into the body.
func (b *Builder) Append(elem domain.DocumentElement) error {
	if b.closed {
		return domain.ErrBuilderClosed
	}

	b.body.WriteString("<w:p>")
	b.writeParagraphProps(elem)
	b.writeRuns(elem.Runs)
	b.body.WriteString("</w:p>")
	return nil
}

// Finalize writes the package to w. The builder cannot be used afterwards.
func (b *Builder) Finalize(w io.Writer) error {
	if b.closed {
		return domain.ErrBuilderClosed
	}
	b.closed = true

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", b.coreXML()},
		{"docProps/app.xml", []byte(appXML)},
		{"word/document.xml", b.documentXML()},
		{"word/styles.xml", stylesXML()},
		{"word/numbering.xml", b.numberingXML()},
		{"word/_rels/document.xml.rels", b.documentRelsXML()},
	}
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	return nil
}

// Discard drops the accumulated body.
func (b *Builder) Discard() error {
	if b.closed {
		return domain.ErrBuilderClosed
	}
	b.closed = true
	b.body.Reset()
	b.links = nil
	b.linkIDs = nil
	return nil
}

func (b *Builder) writeParagraphProps(elem domain.DocumentElement) {
	var props strings.Builder

	switch elem.Kind {
	case domain.ElementHeading:
		level := min(max(elem.Level, 1), 9)
		fmt.Fprintf(&props, `<w:pStyle w:val="Heading%d"/>`, level)
	case domain.ElementBulletItem:
		props.WriteString(`<w:pStyle w:val="ListParagraph"/>`)
		writeNumPr(&props, bulletNumID)
	case domain.ElementOrderedItem:
		if elem.ListStart || b.orderedNums == 0 {
			b.orderedNums++
		}
		props.WriteString(`<w:pStyle w:val="ListParagraph"/>`)
		writeNumPr(&props, firstOrderedNumID+b.orderedNums-1)
	}

	if elem.BorderBottom {
		props.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/></w:pBdr>`)
	}

	if props.Len() > 0 {
		b.body.WriteString("<w:pPr>")
		b.body.WriteString(props.String())
		b.body.WriteString("</w:pPr>")
	}
}

func writeNumPr(sb *strings.Builder, numID int) {
	fmt.Fprintf(sb, `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="%d"/></w:numPr>`, numID)
}

// writeRuns groups consecutive runs of the same link into one hyperlink.
func (b *Builder) writeRuns(runs []domain.Run) {
	for i := 0; i < len(runs); {
		link := runs[i].Link
		if link == "" {
			writeRun(&b.body, runs[i], false)
			i++
			continue
		}

		fmt.Fprintf(&b.body, `<w:hyperlink r:id="%s" w:history="1">`, b.linkRel(link))
		writeRun(&b.body, runs[i], true)
		for i++; i < len(runs) && runs[i-1].SameLink(runs[i].TextSegment); i++ {
			writeRun(&b.body, runs[i], true)
		}
		b.body.WriteString("</w:hyperlink>")
	}
}

func (b *Builder) linkRel(target string) string {
	if id, ok := b.linkIDs[target]; ok {
		return id
	}
	id := "rId" + strconv.Itoa(firstLinkRel+len(b.links))
	b.links = append(b.links, target)
	b.linkIDs[target] = id
	return id
}

func writeRun(buf *bytes.Buffer, run domain.Run, hyperlink bool) {
	buf.WriteString("<w:r>")
	writeRunProps(buf, run, hyperlink)

	lines := strings.Split(run.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			buf.WriteString("<w:br/>")
		}
		if line == "" {
			continue
		}
		buf.WriteString(`<w:t xml:space="preserve">`)
		escape(buf, line)
		buf.WriteString("</w:t>")
	}
	if run.Break {
		buf.WriteString("<w:br/>")
	}
	buf.WriteString("</w:r>")
}

func writeRunProps(buf *bytes.Buffer, run domain.Run, hyperlink bool) {
	var props bytes.Buffer
	if hyperlink {
		props.WriteString(`<w:rStyle w:val="Hyperlink"/>`)
	}
	if run.FontName != "" {
		props.WriteString(`<w:rFonts w:ascii="`)
		escape(&props, run.FontName)
		props.WriteString(`" w:hAnsi="`)
		escape(&props, run.FontName)
		props.WriteString(`" w:cs="`)
		escape(&props, run.FontName)
		props.WriteString(`"/>`)
	}
	if run.Bold {
		props.WriteString("<w:b/>")
	}
	if run.Italic {
		props.WriteString("<w:i/>")
	}
	if color := normalizeColor(run.Color); color != "" {
		fmt.Fprintf(&props, `<w:color w:val="%s"/>`, color)
	}
	if hp := halfPoints(run.FontSize); hp > 0 {
		fmt.Fprintf(&props, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, hp, hp)
	}
	if hyperlink {
		props.WriteString(`<w:u w:val="single"/>`)
	}

	if props.Len() > 0 {
		buf.WriteString("<w:rPr>")
		buf.Write(props.Bytes())
		buf.WriteString("</w:rPr>")
	}
}

// halfPoints converts a point size to the half-point unit of w:sz.
func halfPoints(size float64) int {
	if size <= 0 {
		return 0
	}
	return int(math.Round(size * 2))
}

// normalizeColor accepts RRGGBB with or without a leading '#'. Anything
// else is dropped.
func normalizeColor(color string) string {
	color = strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(color) != 6 {
		return ""
	}
	for _, c := range color {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return ""
		}
	}
	return strings.ToUpper(color)
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}

func (b *Builder) documentXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<w:document xmlns:w="` + nsMain + `" xmlns:r="` + nsRel + `"><w:body>`)
	buf.Write(b.body.Bytes())
	buf.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>`)
	buf.WriteString(`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/>`)
	buf.WriteString(`</w:sectPr></w:body></w:document>`)
	return buf.Bytes()
}

func (b *Builder) documentRelsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<Relationships xmlns="` + nsPackageRels + `">`)
	buf.WriteString(`<Relationship Id="rId1" Type="` + relStyles + `" Target="styles.xml"/>`)
	buf.WriteString(`<Relationship Id="rId2" Type="` + relNumbering + `" Target="numbering.xml"/>`)
	for _, target := range b.links {
		buf.WriteString(`<Relationship Id="`)
		buf.WriteString(b.linkIDs[target])
		buf.WriteString(`" Type="` + relHyperlink + `" Target="`)
		escape(&buf, target)
		buf.WriteString(`" TargetMode="External"/>`)
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func (b *Builder) numberingXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<w:numbering xmlns:w="` + nsMain + `">`)
	fmt.Fprintf(&buf, `<w:abstractNum w:abstractNumId="%d"><w:multiLevelType w:val="singleLevel"/>`, bulletAbstractID)
	buf.WriteString(`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="` + "•" + `"/>`)
	buf.WriteString(`<w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>`)
	fmt.Fprintf(&buf, `<w:abstractNum w:abstractNumId="%d"><w:multiLevelType w:val="singleLevel"/>`, orderedAbstractID)
	buf.WriteString(`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/>`)
	buf.WriteString(`<w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>`)
	fmt.Fprintf(&buf, `<w:num w:numId="%d"><w:abstractNumId w:val="%d"/></w:num>`, bulletNumID, bulletAbstractID)
	for i := range b.orderedNums {
		fmt.Fprintf(&buf, `<w:num w:numId="%d"><w:abstractNumId w:val="%d"/>`, firstOrderedNumID+i, orderedAbstractID)
		buf.WriteString(`<w:lvlOverride w:ilvl="0"><w:startOverride w:val="1"/></w:lvlOverride></w:num>`)
	}
	buf.WriteString(`</w:numbering>`)
	return buf.Bytes()
}

func (b *Builder) coreXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<cp:coreProperties xmlns:cp="` + nsCoreProps + `" xmlns:dc="http://purl.org/dc/elements/1.1/"`)
	buf.WriteString(` xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if b.meta.Title != "" {
		buf.WriteString("<dc:title>")
		escape(&buf, b.meta.Title)
		buf.WriteString("</dc:title>")
	}
	if b.meta.Author != "" {
		buf.WriteString("<dc:creator>")
		escape(&buf, b.meta.Author)
		buf.WriteString("</dc:creator>")
	}
	stamp := b.created.Format(time.RFC3339)
	buf.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>`)
	buf.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>`)
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}
