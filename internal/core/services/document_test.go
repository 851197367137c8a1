package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwright/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
	"github.com/custodia-labs/docwright/internal/normalisers/markdown"
)

type documentFixture struct {
	svc      *DocumentService
	sessions *memory.SessionStore
	output   *mockOutputStore
	builders *mockBuilderFactory
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		sessions: memory.NewSessionStore(),
		output:   newMockOutputStore(),
		builders: &mockBuilderFactory{},
	}
	f.svc = NewDocumentService(f.sessions, f.output, f.builders, markdown.New(), newTestMapper())
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return f
}

func TestDocumentService_Create(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()

	session, err := f.svc.Create(ctx, "  report ", "Quarterly", "Ana")

	require.NoError(t, err)
	assert.Equal(t, "report.docx", session.Filename)
	assert.Equal(t, "Quarterly", session.Title)
	assert.Equal(t, "Ana", session.Author)
	assert.NotEmpty(t, session.ID)
	assert.Empty(t, session.Elements)

	stored, err := f.sessions.Get(ctx, "report.docx")
	require.NoError(t, err)
	assert.Equal(t, session.ID, stored.ID)
}

func TestDocumentService_CreateErrors(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, "a.docx", "", "")
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, "a", "", "")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = f.svc.Create(ctx, "   ", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	failing := NewDocumentService(&failingSessionStore{err: errBoom}, nil, nil, nil, nil)
	_, err = failing.Create(ctx, "b", "", "")
	assert.ErrorIs(t, err, errBoom)
}

func TestDocumentService_DefaultAuthor(t *testing.T) {
	f := newDocumentFixture()
	f.svc.SetDefaults("Config Author", nil)
	ctx := context.Background()

	explicit, err := f.svc.Create(ctx, "a", "", "Given")
	require.NoError(t, err)
	assert.Equal(t, "Given", explicit.Author)

	_, err = f.svc.AddMarkdown(ctx, "lazy", "text", nil)
	require.NoError(t, err)
	lazy, err := f.svc.Get(ctx, "lazy")
	require.NoError(t, err)
	assert.Equal(t, "Config Author", lazy.Author)
}

func TestDocumentService_AddContentCreatesLazily(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()

	n, err := f.svc.AddContent(ctx, "notes", []domain.ContentItem{
		domain.Heading(1, "Notes"),
		domain.Ordered("one", "two"),
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, n)

	session, err := f.svc.Get(ctx, "notes.docx")
	require.NoError(t, err)
	assert.Len(t, session.Elements, 3)
	assert.True(t, session.UpdatedAt.After(session.CreatedAt) || session.UpdatedAt.Equal(session.CreatedAt))
}

func TestDocumentService_AddContentAppends(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()

	_, err := f.svc.AddContent(ctx, "a", []domain.ContentItem{domain.Paragraph("first")}, nil)
	require.NoError(t, err)
	n, err := f.svc.AddMarkdown(ctx, "a.docx", "second\n\n\n\nthird", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	session, err := f.svc.Get(ctx, "a")
	require.NoError(t, err)
	require.Len(t, session.Elements, 5)
	assert.Equal(t, "first", session.Elements[0].Text())
	assert.Equal(t, "second", session.Elements[1].Text())
	assert.True(t, session.Elements[2].IsEmpty())
	assert.True(t, session.Elements[3].IsEmpty())
	assert.Equal(t, "third", session.Elements[4].Text())
}

func TestDocumentService_AddContentStyles(t *testing.T) {
	f := newDocumentFixture()
	f.svc.SetDefaults("", domain.StyleOverrides{domain.StyleParagraph: {FontName: "Georgia", FontSize: 12}})
	ctx := context.Background()

	_, err := f.svc.AddContent(ctx, "a", []domain.ContentItem{domain.Paragraph("base")}, nil)
	require.NoError(t, err)
	_, err = f.svc.AddContent(ctx, "a", []domain.ContentItem{domain.Paragraph("call")},
		domain.StyleOverrides{domain.StyleParagraph: {FontSize: 18}})
	require.NoError(t, err)

	session, err := f.svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Georgia", session.Elements[0].Runs[0].FontName)
	assert.Equal(t, 18.0, session.Elements[1].Runs[0].FontSize)
	assert.Empty(t, session.Elements[1].Runs[0].FontName)
}

func TestDocumentService_AddContentEmptyItems(t *testing.T) {
	f := newDocumentFixture()

	n, err := f.svc.AddContent(context.Background(), "a", nil, nil)

	require.NoError(t, err)
	assert.Zero(t, n)
	session, err := f.svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, session.Elements)
}

func TestDocumentService_Save(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, "r", "Report", "Ana")
	require.NoError(t, err)
	_, err = f.svc.AddMarkdown(ctx, "r", "# Report\n\n- a", nil)
	require.NoError(t, err)

	path, err := f.svc.Save(ctx, "r")

	require.NoError(t, err)
	assert.Equal(t, "/out/r.docx", path)
	assert.Equal(t, []byte("doc:Report"), f.output.writes["r.docx"])
	b := f.builders.last()
	assert.Equal(t, domain.DocumentMeta{Title: "Report", Author: "Ana"}, b.meta)
	assert.Len(t, b.elements, 2)

	_, err = f.sessions.Get(ctx, "r.docx")
	assert.NoError(t, err, "save keeps the session")
}

func TestDocumentService_SaveErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown filename", func(t *testing.T) {
		f := newDocumentFixture()
		_, err := f.svc.Save(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, f.builders.last())
	})

	t.Run("output failure", func(t *testing.T) {
		f := newDocumentFixture()
		f.output.err = errBoom
		_, err := f.svc.AddContent(ctx, "a", []domain.ContentItem{domain.Paragraph("x")}, nil)
		require.NoError(t, err)

		_, err = f.svc.Save(ctx, "a")
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("append failure", func(t *testing.T) {
		f := newDocumentFixture()
		f.builders.appendErr = errBoom
		_, err := f.svc.AddContent(ctx, "a", []domain.ContentItem{domain.Paragraph("x")}, nil)
		require.NoError(t, err)

		_, err = f.svc.Save(ctx, "a")
		assert.ErrorIs(t, err, errBoom)
		assert.Empty(t, f.output.writes)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewDocumentService(memory.NewSessionStore(), nil, nil, nil, nil)
		_, err := svc.Save(ctx, "a")
		assert.ErrorIs(t, err, domain.ErrNotImplemented)
	})
}

func TestDocumentService_Close(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	_, err := f.svc.AddMarkdown(ctx, "c", "text", nil)
	require.NoError(t, err)

	path, err := f.svc.Close(ctx, "c")

	require.NoError(t, err)
	assert.Equal(t, "/out/c.docx", path)
	_, err = f.svc.Get(ctx, "c")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestDocumentService_CloseKeepsSessionOnFailure(t *testing.T) {
	f := newDocumentFixture()
	f.output.err = errBoom
	ctx := context.Background()
	_, err := f.svc.AddMarkdown(ctx, "c", "text", nil)
	require.NoError(t, err)

	_, err = f.svc.Close(ctx, "c")

	require.ErrorIs(t, err, errBoom)
	_, err = f.svc.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestDocumentService_Discard(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	_, err := f.svc.AddMarkdown(ctx, "d", "text", nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Discard(ctx, "d.docx"))

	_, err = f.svc.Get(ctx, "d")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Empty(t, f.output.writes)
	assert.Nil(t, f.builders.last())

	assert.ErrorIs(t, f.svc.Discard(ctx, "d"), domain.ErrSessionNotFound)
}

func TestDocumentService_List(t *testing.T) {
	f := newDocumentFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, "b", "", "")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "a", "", "")
	require.NoError(t, err)

	sessions, err := f.svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "b.docx", sessions[0].Filename)
	assert.Equal(t, "a.docx", sessions[1].Filename)
}

func TestDocumentService_StoreFailures(t *testing.T) {
	svc := NewDocumentService(&failingSessionStore{err: errBoom}, newMockOutputStore(), &mockBuilderFactory{},
		markdown.New(), newTestMapper())
	ctx := context.Background()

	_, err := svc.AddContent(ctx, "a", nil, nil)
	assert.ErrorIs(t, err, errBoom)
	_, err = svc.Get(ctx, "a")
	assert.ErrorIs(t, err, errBoom)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, svc.Discard(ctx, "a"), errBoom)
}

func TestDocumentService_NotConfigured(t *testing.T) {
	svc := NewDocumentService(nil, nil, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "a", "", "")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.AddContent(ctx, "a", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.AddMarkdown(ctx, "a", "", nil)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestDocumentService_Interface(t *testing.T) {
	var _ driven.SessionStore = memory.NewSessionStore()
}
