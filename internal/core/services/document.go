package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
	"github.com/custodia-labs/docwright/internal/core/ports/driving"
	"github.com/custodia-labs/docwright/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages document sessions. Content accumulates in the
// session store until it is saved or discarded.
type DocumentService struct {
	sessions driven.SessionStore
	output   driven.OutputStore
	builders driven.BuilderFactory
	parser   driven.BlockParser
	mapper   *ContentMapper

	author string
	styles domain.StyleOverrides
	now    func() time.Time
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	sessions driven.SessionStore,
	output driven.OutputStore,
	builders driven.BuilderFactory,
	parser driven.BlockParser,
	mapper *ContentMapper,
) *DocumentService {
	return &DocumentService{
		sessions: sessions,
		output:   output,
		builders: builders,
		parser:   parser,
		mapper:   mapper,
		now:      time.Now,
	}
}

// SetDefaults sets the author used when a session has none and the
// configured style overrides.
func (s *DocumentService) SetDefaults(author string, styles domain.StyleOverrides) {
	s.author = author
	s.styles = styles
}

// Create opens a new, empty session.
func (s *DocumentService) Create(ctx context.Context, filename, title, author string) (*domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	name, err := domain.NormalizeFilename(filename)
	if err != nil {
		return nil, err
	}

	_, err = s.sessions.Get(ctx, name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: document %s", domain.ErrAlreadyExists, name)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	session := s.newSession(name, title, author)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	logger.Debug("created session %s for %s", session.ID, name)
	return &session, nil
}

// AddContent maps items and appends them to the session, creating it on
// first use.
func (s *DocumentService) AddContent(
	ctx context.Context,
	filename string,
	items []domain.ContentItem,
	overrides domain.StyleOverrides,
) (int, error) {
	if s.sessions == nil || s.mapper == nil {
		return 0, domain.ErrNotImplemented
	}
	name, err := domain.NormalizeFilename(filename)
	if err != nil {
		return 0, err
	}

	session, err := s.sessions.Get(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		created := s.newSession(name, "", "")
		session = &created
		logger.Debug("created session %s for %s on first write", session.ID, name)
	case err != nil:
		return 0, err
	}

	elements := s.mapper.Map(items, domain.ResolveStyles(s.styles.Layer(overrides)))
	session.Elements = append(session.Elements, elements...)
	session.UpdatedAt = s.now()

	if err := s.sessions.Save(ctx, *session); err != nil {
		return 0, err
	}
	return len(elements), nil
}

// AddMarkdown parses markdown and appends the result.
func (s *DocumentService) AddMarkdown(
	ctx context.Context,
	filename, markdown string,
	overrides domain.StyleOverrides,
) (int, error) {
	if s.parser == nil {
		return 0, domain.ErrNotImplemented
	}
	return s.AddContent(ctx, filename, s.parser.Parse(markdown), overrides)
}

// Save builds the document and writes it to the output store.
func (s *DocumentService) Save(ctx context.Context, filename string) (string, error) {
	if s.output == nil || s.builders == nil {
		return "", domain.ErrNotImplemented
	}
	session, err := s.Get(ctx, filename)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := writeDocument(s.builders, session.Meta(), session.Elements, &buf); err != nil {
		return "", fmt.Errorf("build %s: %w", session.Filename, err)
	}

	path, err := s.output.Write(ctx, session.Filename, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("write %s: %w", session.Filename, err)
	}
	logger.Info("saved %s (%d elements)", path, len(session.Elements))
	return path, nil
}

// Close saves the document and ends the session. The session is kept if
// saving fails.
func (s *DocumentService) Close(ctx context.Context, filename string) (string, error) {
	path, err := s.Save(ctx, filename)
	if err != nil {
		return "", err
	}
	name, _ := domain.NormalizeFilename(filename)
	if err := s.sessions.Delete(ctx, name); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return path, err
	}
	return path, nil
}

// Discard ends the session without writing.
func (s *DocumentService) Discard(ctx context.Context, filename string) error {
	session, err := s.Get(ctx, filename)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, session.Filename); err != nil {
		return err
	}
	logger.Debug("discarded session %s", session.Filename)
	return nil
}

// Get returns the session for filename.
func (s *DocumentService) Get(ctx context.Context, filename string) (*domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	name, err := domain.NormalizeFilename(filename)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// List returns all open sessions.
func (s *DocumentService) List(ctx context.Context) ([]domain.Session, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sessions.List(ctx)
}

func (s *DocumentService) newSession(filename, title, author string) domain.Session {
	if author == "" {
		author = s.author
	}
	now := s.now()
	return domain.Session{
		ID:        uuid.New().String(),
		Filename:  filename,
		Title:     title,
		Author:    author,
		Elements:  []domain.DocumentElement{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
