package normalisers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

type stubNormaliser struct {
	name     string
	types    []string
	priority int
	err      error
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return s.types }
func (s *stubNormaliser) Priority() int                { return s.priority }

func (s *stubNormaliser) Normalise(_ context.Context, _ *domain.RawDocument) (*driven.NormaliseResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &driven.NormaliseResult{Title: s.name}, nil
}

func TestRegistry_SelectByPriority(t *testing.T) {
	low := &stubNormaliser{name: "low", types: []string{"text/markdown"}, priority: 10}
	high := &stubNormaliser{name: "high", types: []string{"text/markdown"}, priority: 80}

	r := NewRegistry(low, high)

	n, err := r.Select("text/markdown")
	require.NoError(t, err)
	assert.Same(t, high, n)
}

func TestRegistry_SelectEqualPriorityKeepsOrder(t *testing.T) {
	first := &stubNormaliser{name: "first", types: []string{"text/plain"}, priority: 5}
	second := &stubNormaliser{name: "second", types: []string{"text/plain"}, priority: 5}

	n, err := NewRegistry(first, second).Select("text/plain")
	require.NoError(t, err)
	assert.Same(t, first, n)
}

func TestRegistry_SelectWildcardFallback(t *testing.T) {
	fallback := &stubNormaliser{name: "fallback", types: []string{"text/plain", "text/*"}, priority: 5}
	md := &stubNormaliser{name: "md", types: []string{"text/markdown"}, priority: 50}
	r := NewRegistry(fallback, md)

	tests := []struct {
		mime string
		want *stubNormaliser
	}{
		{"text/markdown", md},
		{"text/markdown; charset=utf-8", md},
		{"TEXT/MARKDOWN", md},
		{"text/x-go", fallback},
		{"text/csv", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			n, err := r.Select(tt.mime)
			require.NoError(t, err)
			assert.Same(t, tt.want, n)
		})
	}
}

func TestRegistry_SelectUnsupported(t *testing.T) {
	r := NewRegistry(&stubNormaliser{types: []string{"text/*"}})

	_, err := r.Select("application/pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = r.Select("")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Normalise(t *testing.T) {
	r := NewRegistry(&stubNormaliser{name: "md", types: []string{"text/markdown"}, priority: 50})

	result, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/markdown"})
	require.NoError(t, err)
	assert.Equal(t, "md", result.Title)
}

func TestRegistry_Normalise_Errors(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry(&stubNormaliser{types: []string{"text/html"}, err: boom})

	_, err := r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/html"})
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_RegisterNilIgnored(t *testing.T) {
	r := NewRegistry()
	r.Register(nil)
	assert.Empty(t, r.SupportedMIMETypes())
}

func TestRegistry_SupportedMIMETypes(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{types: []string{"text/plain", "text/markdown"}},
		&stubNormaliser{types: []string{"text/markdown", "text/html"}},
	)

	assert.Equal(t, []string{"text/html", "text/markdown", "text/plain"}, r.SupportedMIMETypes())
}

func TestMIMETypeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes.md", MIMEMarkdown},
		{"NOTES.MD", MIMEMarkdown},
		{"a/b/readme.markdown", MIMEMarkdown},
		{"plain.txt", MIMEPlainText},
		{"page.html", MIMEHTML},
		{"page.htm", MIMEHTML},
		{"report.docx", MIMEDocx},
		{"no-extension", MIMEUnknown},
		{"weird.zzzunknown", MIMEUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MIMETypeForPath(tt.path))
		})
	}
}
