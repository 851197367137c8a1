package inline

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// asteriskDelimiters accepts only '*' runs, so snake_case identifiers and
// underscores in URLs are never treated as emphasis.
type asteriskDelimiters struct{}

func (asteriskDelimiters) IsDelimiter(b byte) bool {
	return b == '*'
}

func (asteriskDelimiters) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (asteriskDelimiters) OnMatch(consumes int) ast.Node {
	return ast.NewEmphasis(consumes)
}

// emphasisParser pushes '*' delimiter runs for goldmark's delimiter
// processing to resolve when the paragraph closes.
type emphasisParser struct{}

func newEmphasisParser() parser.InlineParser {
	return emphasisParser{}
}

func (emphasisParser) Trigger() []byte {
	return []byte{'*'}
}

func (emphasisParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, asteriskDelimiters{})
	if node == nil {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}
