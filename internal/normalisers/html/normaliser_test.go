package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

func normalise(t *testing.T, content string) *driven.NormaliseResult {
	t.Helper()
	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:      "/path/to/page.html",
		MIMEType: "text/html",
		Content:  []byte(content),
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestNew(t *testing.T) {
	require.NotNil(t, New())
}

func TestSupportedMIMETypes(t *testing.T) {
	types := New().SupportedMIMETypes()
	assert.Contains(t, types, "text/html")
	assert.Contains(t, types, "application/xhtml+xml")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	result := normalise(t, "<html><head><title>Test Page</title></head><body><p>Hello World</p></body></html>")

	assert.Equal(t, "Test Page", result.Title)
	assert.Equal(t, []domain.ContentItem{domain.Paragraph("Hello World")}, result.Items)
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_Structure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []domain.ContentItem
	}{
		{
			name:  "headings",
			input: "<h1>Top</h1><h3>Third</h3><h6>Deep</h6>",
			want: []domain.ContentItem{
				domain.Heading(1, "Top"),
				domain.Heading(3, "Third"),
				domain.Heading(6, "Deep"),
			},
		},
		{
			name:  "inline formatting re-encoded",
			input: "<p>Some <strong>bold</strong>, <em>italic</em> and <a href=\"https://x.io\">a link</a>.</p>",
			want: []domain.ContentItem{
				domain.Paragraph("Some **bold**, *italic* and [a link](https://x.io)."),
			},
		},
		{
			name:  "whitespace inside markers moved outside",
			input: "<p>x<b> spaced </b>y</p>",
			want:  []domain.ContentItem{domain.Paragraph("x **spaced** y")},
		},
		{
			name:  "whitespace collapsed",
			input: "<p>  lots\n\n   of\tspace  </p>",
			want:  []domain.ContentItem{domain.Paragraph("lots of space")},
		},
		{
			name:  "line break kept",
			input: "<p>line one<br>line two</p>",
			want:  []domain.ContentItem{domain.Paragraph("line one\nline two")},
		},
		{
			name:  "lists",
			input: "<ul><li>a</li><li><b>b</b></li></ul><ol><li>first</li><li>second</li></ol>",
			want: []domain.ContentItem{
				domain.Bullets("a", "**b**"),
				domain.Ordered("first", "second"),
			},
		},
		{
			name:  "nested list flattened",
			input: "<ul><li>outer<ul><li>inner</li></ul></li><li>last</li></ul>",
			want:  []domain.ContentItem{domain.Bullets("outer", "inner", "last")},
		},
		{
			name:  "empty list dropped",
			input: "<ul><li> </li></ul><p>after</p>",
			want:  []domain.ContentItem{domain.Paragraph("after")},
		},
		{
			name:  "blockquote",
			input: "<blockquote><p>quoted</p><p>text</p></blockquote>",
			want:  []domain.ContentItem{domain.Blockquote("quoted text")},
		},
		{
			name:  "rule",
			input: "<p>above</p><hr><p>below</p>",
			want: []domain.ContentItem{
				domain.Paragraph("above"),
				domain.Rule(),
				domain.Paragraph("below"),
			},
		},
		{
			name:  "loose text in div becomes paragraph",
			input: "<div>loose <i>text</i><p>para</p>tail</div>",
			want: []domain.ContentItem{
				domain.Paragraph("loose *text*"),
				domain.Paragraph("para"),
				domain.Paragraph("tail"),
			},
		},
		{
			name:  "scripts and styles dropped",
			input: "<style>p{}</style><script>alert(1)</script><p>kept</p>",
			want:  []domain.ContentItem{domain.Paragraph("kept")},
		},
		{
			name:  "entities decoded",
			input: "<p>Fish &amp; Chips &lt;3</p>",
			want:  []domain.ContentItem{domain.Paragraph("Fish & Chips <3")},
		},
		{
			name:  "link without href is text",
			input: "<p><a name=\"x\">anchor</a></p>",
			want:  []domain.ContentItem{domain.Paragraph("anchor")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalise(t, tt.input).Items)
		})
	}
}

func TestNormalise_TitleFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"title tag", "<title> Spaced  Title </title><h1>Heading</h1>", "Spaced Title"},
		{"first h1", "<h2>Sub</h2><h1>Main</h1>", "Main"},
		{"filename", "<p>text</p>", "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalise(t, tt.input).Title)
		})
	}
}

func TestNormalise_EmptyContent(t *testing.T) {
	result := normalise(t, "")
	assert.Empty(t, result.Items)
	assert.Equal(t, "page", result.Title)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "**x**", wrap("**", "x"))
	assert.Equal(t, " *x* ", wrap("*", " x "))
	assert.Equal(t, "  ", wrap("**", "  "))
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
