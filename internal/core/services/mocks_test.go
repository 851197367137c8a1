package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
)

// mockBuilder records appended elements and writes a summary on Finalize.
type mockBuilder struct {
	meta      domain.DocumentMeta
	elements  []domain.DocumentElement
	appendErr error
	finalized bool
	discarded bool
}

func (b *mockBuilder) Append(e domain.DocumentElement) error {
	if b.appendErr != nil {
		return b.appendErr
	}
	b.elements = append(b.elements, e)
	return nil
}

func (b *mockBuilder) Finalize(w io.Writer) error {
	b.finalized = true
	_, err := io.WriteString(w, "doc:"+b.meta.Title)
	return err
}

func (b *mockBuilder) Discard() error {
	b.discarded = true
	return nil
}

type mockBuilderFactory struct {
	mu        sync.Mutex
	builders  []*mockBuilder
	appendErr error
	newErr    error
}

func (f *mockBuilderFactory) NewBuilder(meta domain.DocumentMeta) (driven.DocumentBuilder, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b := &mockBuilder{meta: meta, appendErr: f.appendErr}
	f.builders = append(f.builders, b)
	return b, nil
}

func (f *mockBuilderFactory) Extension() string { return ".docx" }

func (f *mockBuilderFactory) last() *mockBuilder {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.builders) == 0 {
		return nil
	}
	return f.builders[len(f.builders)-1]
}

type mockOutputStore struct {
	mu     sync.Mutex
	writes map[string][]byte
	err    error
}

func newMockOutputStore() *mockOutputStore {
	return &mockOutputStore{writes: make(map[string][]byte)}
}

func (s *mockOutputStore) Write(_ context.Context, filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes[filename] = data
	return "/out/" + filename, nil
}

func (s *mockOutputStore) Dir() string { return "/out" }

type mockRegistry struct {
	result *driven.NormaliseResult
	err    error
	seen   *domain.RawDocument
}

func (r *mockRegistry) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	r.seen = raw
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

func (r *mockRegistry) Register(driven.Normaliser) {}

func (r *mockRegistry) SupportedMIMETypes() []string { return []string{"text/markdown"} }

// failingSessionStore fails every call with err.
type failingSessionStore struct {
	err error
}

func (s *failingSessionStore) Save(context.Context, domain.Session) error { return s.err }

func (s *failingSessionStore) Get(context.Context, string) (*domain.Session, error) {
	return nil, s.err
}

func (s *failingSessionStore) Delete(context.Context, string) error { return s.err }

func (s *failingSessionStore) List(context.Context) ([]domain.Session, error) { return nil, s.err }

var errBoom = errors.New("boom")
