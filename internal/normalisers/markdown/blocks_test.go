package markdown

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

func TestParse_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []domain.ContentItem
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only blank lines",
			input: "\n\n  \n\t\n",
			want:  nil,
		},
		{
			name:  "heading, paragraph and list",
			input: "# Title\n\nBody text.\n\n- One\n- Two",
			want: []domain.ContentItem{
				domain.Heading(1, "Title"),
				domain.Paragraph("Body text."),
				domain.Bullets("One", "Two"),
			},
		},
		{
			name:  "two blank lines emit one spacer",
			input: "A\n\n\nB",
			want: []domain.ContentItem{
				domain.Paragraph("A"),
				domain.Spacer(),
				domain.Paragraph("B"),
			},
		},
		{
			name:  "leading and trailing blanks emit nothing",
			input: "\n\n\nA\n\n\n\n",
			want:  []domain.ContentItem{domain.Paragraph("A")},
		},
		{
			name:  "soft wrapped paragraph joins with one space",
			input: "first line\n   second line  \nthird",
			want:  []domain.ContentItem{domain.Paragraph("first line second line third")},
		},
		{
			name:  "heading interrupts paragraph",
			input: "intro\n## Section\nbody",
			want: []domain.ContentItem{
				domain.Paragraph("intro"),
				domain.Heading(2, "Section"),
				domain.Paragraph("body"),
			},
		},
		{
			name:  "mixed bullet markers group",
			input: "- a\n* b\n- c",
			want:  []domain.ContentItem{domain.Bullets("a", "b", "c")},
		},
		{
			name:  "ordered list",
			input: "1. first\n2. second\n10. tenth",
			want:  []domain.ContentItem{domain.Ordered("first", "second", "tenth")},
		},
		{
			name:  "list kind change starts a new list",
			input: "- a\n1. b",
			want: []domain.ContentItem{
				domain.Bullets("a"),
				domain.Ordered("b"),
			},
		},
		{
			name:  "single blank line keeps list open",
			input: "- a\n\n- b",
			want:  []domain.ContentItem{domain.Bullets("a", "b")},
		},
		{
			name:  "two blank lines split list with spacer",
			input: "- a\n\n\n- b",
			want: []domain.ContentItem{
				domain.Bullets("a"),
				domain.Spacer(),
				domain.Bullets("b"),
			},
		},
		{
			name:  "paragraph line ends list",
			input: "- a\n- b\nafter",
			want: []domain.ContentItem{
				domain.Bullets("a", "b"),
				domain.Paragraph("after"),
			},
		},
		{
			name:  "list after blank then paragraph",
			input: "- a\n\nafter",
			want: []domain.ContentItem{
				domain.Bullets("a"),
				domain.Paragraph("after"),
			},
		},
		{
			name:  "trim law",
			input: "-   item with  spaces   ",
			want:  []domain.ContentItem{domain.Bullets("item with  spaces")},
		},
		{
			name:  "blockquote lines join",
			input: "> quoted\n> text\n>\n>more",
			want:  []domain.ContentItem{domain.Blockquote("quoted text more")},
		},
		{
			name:  "bare quote marker yields nothing",
			input: ">",
			want:  nil,
		},
		{
			name:  "empty quote between paragraphs dropped",
			input: "a\n>\n>\nb",
			want: []domain.ContentItem{
				domain.Paragraph("a"),
				domain.Paragraph("b"),
			},
		},
		{
			name:  "dropped quote keeps surrounding blank lines",
			input: "a\n\n>\n\nb",
			want: []domain.ContentItem{
				domain.Paragraph("a"),
				domain.Spacer(),
				domain.Paragraph("b"),
			},
		},
		{
			name:  "blockquote ends at non quote line",
			input: "> quote\nplain",
			want: []domain.ContentItem{
				domain.Blockquote("quote"),
				domain.Paragraph("plain"),
			},
		},
		{
			name:  "thematic breaks",
			input: "above\n\n***\n\n___\n-----\nbelow",
			want: []domain.ContentItem{
				domain.Paragraph("above"),
				domain.Rule(),
				domain.Rule(),
				domain.Rule(),
				domain.Paragraph("below"),
			},
		},
		{
			name:  "setext underline is a rule",
			input: "Title\n---",
			want: []domain.ContentItem{
				domain.Paragraph("Title"),
				domain.Rule(),
			},
		},
		{
			name:  "mixed rule characters are a paragraph",
			input: "-*-",
			want:  []domain.ContentItem{domain.Paragraph("-*-")},
		},
		{
			name:  "seven hashes are a paragraph",
			input: "####### too deep",
			want:  []domain.ContentItem{domain.Paragraph("####### too deep")},
		},
		{
			name:  "hash without space is a paragraph",
			input: "#hashtag",
			want:  []domain.ContentItem{domain.Paragraph("#hashtag")},
		},
		{
			name:  "emphasis at line start is not a bullet",
			input: "**bold** start\n*italic* too",
			want:  []domain.ContentItem{domain.Paragraph("**bold** start *italic* too")},
		},
		{
			name:  "indented block starts are recognised",
			input: "   ## Indented\n  - item",
			want: []domain.ContentItem{
				domain.Heading(2, "Indented"),
				domain.Bullets("item"),
			},
		},
		{
			name:  "CRLF line endings",
			input: "# T\r\n\r\n\r\nbody\rmore",
			want: []domain.ContentItem{
				domain.Heading(1, "T"),
				domain.Spacer(),
				domain.Paragraph("body more"),
			},
		},
		{
			name:  "spacers after heading and list",
			input: "# H\n\n\n\n- a\n\n\nend",
			want: []domain.ContentItem{
				domain.Heading(1, "H"),
				domain.Spacer(),
				domain.Spacer(),
				domain.Bullets("a"),
				domain.Spacer(),
				domain.Paragraph("end"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParse_HeadingLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		t.Run(fmt.Sprintf("level %d", level), func(t *testing.T) {
			items := Parse(strings.Repeat("#", level) + " T")

			require.Len(t, items, 1)
			item := items[0]
			assert.Equal(t, domain.ContentHeading, item.Kind)
			require.NotNil(t, item.Text)
			assert.Equal(t, "T", *item.Text)
			require.NotNil(t, item.Format)
			assert.Equal(t, level, item.Format.Level)
			require.NotNil(t, item.Format.BorderBottom)
			assert.Equal(t, level <= 2, *item.Format.BorderBottom)
		})
	}
}

func TestParse_SpacerLaw(t *testing.T) {
	for blanks := 0; blanks <= 6; blanks++ {
		t.Run(fmt.Sprintf("%d blank lines", blanks), func(t *testing.T) {
			input := "# A" + strings.Repeat("\n", blanks+1) + "B"
			items := Parse(input)

			spacers := max(0, blanks-1)
			require.Len(t, items, 2+spacers)
			assert.Equal(t, domain.ContentHeading, items[0].Kind)
			for i := 1; i <= spacers; i++ {
				assert.Equal(t, domain.Spacer(), items[i])
			}
			assert.Equal(t, domain.Paragraph("B"), items[len(items)-1])
		})
	}
}

func TestParse_SpacerLawBetweenParagraphs(t *testing.T) {
	for blanks := 2; blanks <= 5; blanks++ {
		input := "A" + strings.Repeat("\n", blanks+1) + "B"
		items := Parse(input)
		assert.Len(t, items, 2+blanks-1, "input %q", input)
	}
	// A single blank line separates without a spacer; zero merges.
	assert.Len(t, Parse("A\n\nB"), 2)
	assert.Equal(t, []domain.ContentItem{domain.Paragraph("A B")}, Parse("A\nB"))
}

func TestParse_Idempotent(t *testing.T) {
	input := "# Report\n\nIntro **bold**.\n\n\n- a\n- b\n\n> quote\n\n---\n1. x\n2. y"
	assert.Equal(t, Parse(input), Parse(input))
}

func TestParse_UnicodeNormalisedToNFC(t *testing.T) {
	items := Parse("Cafe\u0301")

	require.Len(t, items, 1)
	assert.Equal(t, "Caf\u00e9", *items[0].Text)
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		"#", "# ", "-", "- ", "1.", ">", "> ", "***", "**", "\r", "\r\n\r\n",
		"- \n\n\n", "[](", "###### ", "\x00\x01", strings.Repeat("\n", 1000),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = Parse(in) }, "input %q", in)
	}
}

func TestIsThematicBreak(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"---", true},
		{"***", true},
		{"___", true},
		{"----------", true},
		{"--", false},
		{"-*-", false},
		{"- - -", false},
		{"===", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isThematicBreak(tt.line))
		})
	}
}
