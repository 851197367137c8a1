package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

func testSession(filename string, created time.Time) domain.Session {
	return domain.Session{
		ID:        "id-" + filename,
		Filename:  filename,
		Title:     "Title " + filename,
		CreatedAt: created,
		UpdatedAt: created,
		Elements: []domain.DocumentElement{
			domain.NewElement(domain.ElementParagraph, 0,
				[]domain.TextSegment{{Text: "hello"}}, domain.DefaultParagraphStyle),
		},
	}
}

func TestNewSessionStore(t *testing.T) {
	store := NewSessionStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.sessions)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := testSession("report.docx", time.Now())
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "report.docx")
	require.NoError(t, err)
	assert.Equal(t, "id-report.docx", got.ID)
	assert.Equal(t, "Title report.docx", got.Title)
	require.Len(t, got.Elements, 1)
	assert.Equal(t, "hello", got.Elements[0].Text())
}

func TestSessionStore_Save_Update(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := testSession("a.docx", time.Now())
	require.NoError(t, store.Save(ctx, session))

	session.Title = "Updated"
	session.Elements = append(session.Elements, domain.NewEmptyElement(domain.DefaultParagraphStyle))
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "a.docx")
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)
	assert.Len(t, got.Elements, 2)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	store := NewSessionStore()

	got, err := store.Get(context.Background(), "missing.docx")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_Get_ReturnsCopy(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSession("a.docx", time.Now())))

	got, err := store.Get(ctx, "a.docx")
	require.NoError(t, err)
	got.Elements[0] = domain.NewEmptyElement(domain.DefaultParagraphStyle)

	again, err := store.Get(ctx, "a.docx")
	require.NoError(t, err)
	assert.Equal(t, "hello", again.Elements[0].Text())
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSession("a.docx", time.Now())))

	require.NoError(t, store.Delete(ctx, "a.docx"))
	_, err := store.Get(ctx, "a.docx")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, "a.docx"))
}

func TestSessionStore_List_OrderedByCreation(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testSession("c.docx", base.Add(2*time.Minute))))
	require.NoError(t, store.Save(ctx, testSession("a.docx", base)))
	require.NoError(t, store.Save(ctx, testSession("b.docx", base.Add(time.Minute))))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a.docx", list[0].Filename)
	assert.Equal(t, "b.docx", list[1].Filename)
	assert.Equal(t, "c.docx", list[2].Filename)
}

func TestSessionStore_List_Empty(t *testing.T) {
	list, err := NewSessionStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSessionStore_ConcurrentDistinctFilenames(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("doc-%d.docx", n)
			_ = store.Save(ctx, testSession(name, time.Now()))
			_, _ = store.Get(ctx, name)
		}(i)
	}
	wg.Wait()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
