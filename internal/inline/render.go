package inline

import (
	"strings"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

// Render re-encodes segments as inline markup. Consecutive segments of
// the same link become one [label](url) span. Breaks are written as
// newlines.
func Render(segments []domain.TextSegment) string {
	var sb strings.Builder
	for i := 0; i < len(segments); {
		seg := segments[i]
		if seg.Link == "" {
			writeStyled(&sb, seg)
			i++
			continue
		}

		sb.WriteByte('[')
		j := i
		for {
			label := segments[j]
			label.Break = false
			writeStyled(&sb, label)
			j++
			if segments[j-1].Break || j == len(segments) || !segments[j-1].SameLink(segments[j]) {
				break
			}
		}
		sb.WriteString("](")
		sb.WriteString(seg.Link)
		sb.WriteByte(')')
		if segments[j-1].Break {
			sb.WriteByte('\n')
		}
		i = j
	}
	return sb.String()
}

// writeStyled wraps the visible text in emphasis markers. Surrounding
// whitespace stays outside the markers so the result parses back.
func writeStyled(sb *strings.Builder, seg domain.TextSegment) {
	marker := ""
	switch {
	case seg.Bold && seg.Italic:
		marker = "***"
	case seg.Bold:
		marker = "**"
	case seg.Italic:
		marker = "*"
	}

	trimmed := strings.TrimLeft(seg.Text, edgeSpace)
	core := strings.TrimRight(trimmed, edgeSpace)
	if marker == "" || core == "" {
		sb.WriteString(seg.Text)
	} else {
		sb.WriteString(seg.Text[:len(seg.Text)-len(trimmed)])
		sb.WriteString(marker)
		sb.WriteString(core)
		sb.WriteString(marker)
		sb.WriteString(trimmed[len(core):])
	}
	if seg.Break {
		sb.WriteByte('\n')
	}
}
