package inline

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// Ensure Formatter implements the interface.
var _ driven.InlineFormatter = (*Formatter)(nil)

const edgeSpace = " \t"

// Formatter parses inline markup. It holds no per-call state and is safe
// for concurrent use.
type Formatter struct {
	parser parser.Parser
}

// NewFormatter creates a formatter with the restricted inline grammar.
func NewFormatter() *Formatter {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewParagraphParser(), 100),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewLinkParser(), 200),
			util.Prioritized(newEmphasisParser(), 500),
		),
	)
	return &Formatter{parser: p}
}

var defaultFormatter = NewFormatter()

// Format splits line using a shared default Formatter.
func Format(line string) []domain.TextSegment {
	return defaultFormatter.Format(line)
}

// Format splits line into styled segments. It never fails: markers that
// do not pair up stay in the text verbatim. The result always has at
// least one segment.
func (f *Formatter) Format(line string) []domain.TextSegment {
	body := strings.TrimLeft(line, edgeSpace)
	leading := line[:len(line)-len(body)]
	body = strings.TrimRight(body, edgeSpace)
	trailing := line[len(leading)+len(body):]

	var b segmentBuilder
	b.add(leading, runStyle{})

	if body != "" {
		source := []byte(body)
		doc := f.parser.Parse(text.NewReader(source))
		first := true
		for para := doc.FirstChild(); para != nil; para = para.NextSibling() {
			if !first {
				b.lineBreak()
			}
			first = false
			b.walk(para, source, runStyle{})
		}
	}

	b.add(trailing, runStyle{})

	if len(b.segments) == 0 {
		return []domain.TextSegment{{}}
	}
	return b.segments
}

type runStyle struct {
	bold   bool
	italic bool
	link   string
}

type segmentBuilder struct {
	segments []domain.TextSegment

	// linkOpened is set while no text of the current link has been added.
	linkOpened bool
}

func (b *segmentBuilder) walk(n ast.Node, source []byte, st runStyle) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Emphasis:
			next := st
			if node.Level >= 2 {
				next.bold = true
			} else {
				next.italic = true
			}
			b.walk(node, source, next)
		case *ast.Link:
			next := st
			next.link = string(node.Destination)
			b.linkOpened = true
			b.walk(node, source, next)
			b.linkOpened = false
		case *ast.Image:
			// Images are out of scope; keep the markup as written.
			b.add("!["+literal(node, source)+"]("+string(node.Destination)+")", st)
		case *ast.Text:
			b.add(string(node.Segment.Value(source)), st)
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.lineBreak()
			}
		case *ast.String:
			b.add(string(node.Value), st)
		default:
			b.walk(c, source, st)
		}
	}
}

// add appends text, merging into the previous segment when the styling
// matches and no break separates them. The first text of a link never
// merges into an adjacent link to the same target.
func (b *segmentBuilder) add(s string, st runStyle) {
	if s == "" {
		return
	}
	seg := domain.TextSegment{Text: s, Bold: st.bold, Italic: st.italic, Link: st.link}
	opened := b.linkOpened && st.link != ""
	b.linkOpened = false
	if n := len(b.segments); n > 0 {
		last := &b.segments[n-1]
		seg.NewLink = opened && last.Link == seg.Link
		if !last.Break && last.SameStyle(seg) {
			last.Text += s
			return
		}
	}
	b.segments = append(b.segments, seg)
}

func (b *segmentBuilder) lineBreak() {
	if n := len(b.segments); n > 0 && !b.segments[n-1].Break {
		b.segments[n-1].Break = true
		return
	}
	b.segments = append(b.segments, domain.TextSegment{Break: true})
}

// literal returns the source text covered by the descendants of n.
func literal(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
