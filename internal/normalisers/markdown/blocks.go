package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletPattern  = regexp.MustCompile(`^[-*]\s+`)
	orderedPattern = regexp.MustCompile(`^\d+\.\s+`)
)

// lineKind classifies a single trimmed, non-blank line.
type lineKind int

const (
	lineParagraph lineKind = iota
	lineHeading
	lineBullet
	lineOrdered
	lineQuote
	lineRule
)

// Parse splits markdown into content items. It is total: any input,
// including malformed markup, yields a result and never an error.
//
// Runs of two or more blank lines between blocks produce N-1 empty
// paragraphs so the document keeps the vertical rhythm of the source.
func Parse(markdown string) []domain.ContentItem {
	lines := splitLines(markdown)

	var items []domain.ContentItem
	blanks := 0
	for i := 0; i < len(lines); {
		if isBlank(lines[i]) {
			blanks++
			i++
			continue
		}

		item, next, ok := parseBlock(lines, i)
		i = next
		if !ok {
			continue
		}

		if len(items) > 0 {
			for n := 1; n < blanks; n++ {
				items = append(items, domain.Spacer())
			}
		}
		blanks = 0
		items = append(items, item)
	}
	return items
}

// splitLines normalises line endings and Unicode composition.
func splitLines(markdown string) []string {
	text := strings.ReplaceAll(markdown, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFC.String(text)
	return strings.Split(text, "\n")
}

// parseBlock reads the block starting at lines[start]. ok is false when
// the block has no content and yields no item.
func parseBlock(lines []string, start int) (item domain.ContentItem, next int, ok bool) {
	line := strings.TrimSpace(lines[start])
	switch classify(line) {
	case lineHeading:
		m := headingPattern.FindStringSubmatch(line)
		item, next = domain.Heading(len(m[1]), strings.TrimSpace(m[2])), start+1
	case lineBullet:
		item, next = parseList(lines, start, lineBullet)
	case lineOrdered:
		item, next = parseList(lines, start, lineOrdered)
	case lineQuote:
		return parseBlockquote(lines, start)
	case lineRule:
		item, next = domain.Rule(), start+1
	default:
		item, next = parseParagraph(lines, start)
	}
	return item, next, true
}

func classify(line string) lineKind {
	switch {
	case headingPattern.MatchString(line):
		return lineHeading
	case bulletPattern.MatchString(line):
		return lineBullet
	case orderedPattern.MatchString(line):
		return lineOrdered
	case strings.HasPrefix(line, ">"):
		return lineQuote
	case isThematicBreak(line):
		return lineRule
	default:
		return lineParagraph
	}
}

// parseList collects items of one kind. A single blank line between two
// items keeps the list open; a longer run, a different marker kind or any
// other line ends it. Blank lines that end the list are left unconsumed
// so the caller can count them for spacers.
func parseList(lines []string, start int, kind lineKind) (domain.ContentItem, int) {
	pattern := bulletPattern
	if kind == lineOrdered {
		pattern = orderedPattern
	}

	var entries []string
	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			if i+1 < len(lines) && !isBlank(lines[i+1]) && classify(strings.TrimSpace(lines[i+1])) == kind {
				i++
				continue
			}
			break
		}
		if classify(line) != kind {
			break
		}
		entries = append(entries, strings.TrimSpace(pattern.ReplaceAllString(line, "")))
		i++
	}

	if kind == lineOrdered {
		return domain.Ordered(entries...), i
	}
	return domain.Bullets(entries...), i
}

// parseBlockquote joins consecutive '>' lines into one italic paragraph.
// Bare '>' lines are skipped; a quote made only of them yields no item.
func parseBlockquote(lines []string, start int) (domain.ContentItem, int, bool) {
	var parts []string
	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, ">") {
			break
		}
		if text := strings.TrimSpace(strings.TrimPrefix(line, ">")); text != "" {
			parts = append(parts, text)
		}
		i++
	}
	if len(parts) == 0 {
		return domain.ContentItem{}, i, false
	}
	return domain.Blockquote(strings.Join(parts, " ")), i, true
}

// parseParagraph joins lines up to the next blank line or block start.
func parseParagraph(lines []string, start int) (domain.ContentItem, int) {
	var parts []string
	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			break
		}
		if i > start && classify(line) != lineParagraph {
			break
		}
		parts = append(parts, line)
		i++
	}
	return domain.Paragraph(strings.Join(parts, " ")), i
}

// isThematicBreak reports whether line is three or more of one character
// from "-*_" and nothing else.
func isThematicBreak(line string) bool {
	if len(line) < 3 {
		return false
	}
	c := line[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != c {
			return false
		}
	}
	return true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
