package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docwright resources.
	uriScheme = "docwright://"

	jsonMIMEType = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "styles/defaults",
		Name:        "default-styles",
		Description: "Style sheet applied when a call passes no overrides",
		MIMEType:    jsonMIMEType,
	}, s.handleStylesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Open document sessions",
		MIMEType:    jsonMIMEType,
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{filename}",
		Name:        "document",
		Description: "Elements accumulated in an open document session",
		MIMEType:    jsonMIMEType,
	}, s.handleDocumentResource)
}

// handleStylesResource returns the configured style sheet, or the
// built-in one when no settings are available.
func (s *Server) handleStylesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sheet := domain.DefaultStyleSheet()
	if s.ports.Settings != nil {
		configured, err := s.ports.Settings.StyleSheet()
		if err != nil {
			return nil, fmt.Errorf("loading styles: %w", err)
		}
		sheet = configured
	}
	return jsonResource(req.Params.URI, sheet)
}

// handleDocumentsResource lists open sessions.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessions, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]DocumentOutput, len(sessions))
	for i := range sessions {
		infos[i] = toDocumentOutput(&sessions[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// documentView is the JSON shape of one session.
type documentView struct {
	Filename string        `json:"filename"`
	Title    string        `json:"title,omitempty"`
	Author   string        `json:"author,omitempty"`
	Elements []elementView `json:"elements"`
}

type elementView struct {
	Kind  string `json:"kind"`
	Level int    `json:"level,omitempty"`
	Text  string `json:"text"`
}

// handleDocumentResource returns the elements of one session.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	filename := extractFilename(req.Params.URI)
	if filename == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	session, err := s.ports.Document.Get(ctx, filename)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	view := documentView{
		Filename: session.Filename,
		Title:    session.Title,
		Author:   session.Author,
		Elements: make([]elementView, len(session.Elements)),
	}
	for i := range session.Elements {
		e := session.Elements[i]
		view.Elements[i] = elementView{Kind: e.Kind.String(), Level: e.Level, Text: e.Text()}
	}
	return jsonResource(req.Params.URI, view)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIMEType,
			Text:     string(data),
		}},
	}, nil
}

// extractFilename extracts the filename from a URI like
// docwright://documents/{filename}. Percent-encoding is undone.
func extractFilename(uri string) string {
	const prefix = uriScheme + "documents/"

	name, ok := strings.CutPrefix(uri, prefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return ""
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}
