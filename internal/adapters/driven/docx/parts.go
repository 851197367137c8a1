package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Namespaces and relationship types.
const (
	nsMain        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCoreProps   = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"

	relOfficeDoc = nsRel + "/officeDocument"
	relStyles    = nsRel + "/styles"
	relNumbering = nsRel + "/numbering"
	relHyperlink = nsRel + "/hyperlink"
	relCoreProps = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relAppProps  = nsRel + "/extended-properties"
)

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="` + nsPackageRels + `">` +
	`<Relationship Id="rId1" Type="` + relOfficeDoc + `" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="` + relCoreProps + `" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="` + relAppProps + `" Target="docProps/app.xml"/>` +
	`</Relationships>`

const appXML = xml.Header +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>docwright</Application></Properties>`

// headingSizes are the half-point sizes of the HeadingN styles. Runs
// carry their own size, so these only matter when a document is restyled
// in a word processor.
var headingSizes = [9]int{48, 40, 32, 28, 24, 24, 22, 22, 22}

func stylesXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<w:styles xmlns:w="` + nsMain + `">`)
	buf.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>`)
	buf.WriteString(`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/><w:szCs w:val="22"/>`)
	buf.WriteString(`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/>`)
	buf.WriteString(`</w:pPr></w:pPrDefault></w:docDefaults>`)

	buf.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	for i, size := range headingSizes {
		level := i + 1
		fmt.Fprintf(&buf, `<w:style w:type="paragraph" w:styleId="Heading%d">`, level)
		fmt.Fprintf(&buf, `<w:name w:val="heading %d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>`, level)
		fmt.Fprintf(&buf, `<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="80"/><w:outlineLvl w:val="%d"/></w:pPr>`, i)
		fmt.Fprintf(&buf, `<w:rPr><w:b/><w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:style>`, size, size)
	}
	buf.WriteString(`<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/>`)
	buf.WriteString(`<w:basedOn w:val="Normal"/><w:qFormat/><w:pPr><w:ind w:left="720"/><w:contextualSpacing/></w:pPr></w:style>`)
	buf.WriteString(`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/>`)
	buf.WriteString(`<w:rPr><w:color w:val="0563C1"/><w:u w:val="single"/></w:rPr></w:style>`)
	buf.WriteString(`</w:styles>`)
	return buf.Bytes()
}
