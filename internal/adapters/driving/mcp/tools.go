package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docwright/internal/core/domain"
)

// CreateDocumentInput is the input schema for create_document.
type CreateDocumentInput struct {
	Filename string `json:"filename" jsonschema:"output file name; .docx is appended if missing"`
	Title    string `json:"title,omitempty" jsonschema:"document title stored in the file properties"`
	Author   string `json:"author,omitempty" jsonschema:"document author stored in the file properties"`
}

// DocumentOutput describes one open session.
type DocumentOutput struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Elements int    `json:"elements"`
}

// AddContentInput is the input schema for add_content.
type AddContentInput struct {
	Filename string                         `json:"filename" jsonschema:"document to append to; created if not open"`
	Items    []domain.ContentItem           `json:"items" jsonschema:"content items: paragraph, heading, bullets or ordered"`
	Styles   map[string]domain.ElementStyle `json:"styles,omitempty" jsonschema:"style buckets to replace for these items, keyed by heading1-4, paragraph, bullets, ordered or blockquote"`
}

// AddMarkdownInput is the input schema for add_markdown.
type AddMarkdownInput struct {
	Filename string                         `json:"filename" jsonschema:"document to append to; created if not open"`
	Markdown string                         `json:"markdown" jsonschema:"markdown text: headings, lists, quotes, rules, bold, italic and links"`
	Styles   map[string]domain.ElementStyle `json:"styles,omitempty" jsonschema:"style buckets to replace for this content"`
}

// AddOutput reports an append.
type AddOutput struct {
	Filename string `json:"filename"`
	Added    int    `json:"added"`
}

// FilenameInput names a session.
type FilenameInput struct {
	Filename string `json:"filename" jsonschema:"name of an open document"`
}

// SaveOutput reports where a document was written.
type SaveOutput struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// DiscardOutput confirms a discard.
type DiscardOutput struct {
	Filename  string `json:"filename"`
	Discarded bool   `json:"discarded"`
}

// ListInput takes no arguments.
type ListInput struct{}

// ListOutput lists open sessions.
type ListOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// ParseMarkdownInput is the input schema for parse_markdown.
type ParseMarkdownInput struct {
	Markdown string `json:"markdown" jsonschema:"markdown text to split into content items"`
}

// ParseMarkdownOutput holds parsed content items.
type ParseMarkdownOutput struct {
	Items []domain.ContentItem `json:"items"`
	Count int                  `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_document",
		Description: "Open a new document session. Optional: add_content and add_markdown open one on demand.",
	}, s.handleCreateDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_content",
		Description: "Append structured content items to a document",
	}, s.handleAddContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_markdown",
		Description: "Append markdown to a document",
	}, s.handleAddMarkdown)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_document",
		Description: "Write the document to disk and keep the session open",
	}, s.handleSaveDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "close_document",
		Description: "Write the document to disk and end the session",
	}, s.handleCloseDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "discard_document",
		Description: "End a session without writing anything",
	}, s.handleDiscardDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List open document sessions",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_markdown",
		Description: "Show the content items markdown parses to, without adding it to a document",
	}, s.handleParseMarkdown)
}

func (s *Server) handleCreateDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	session, err := s.ports.Document.Create(ctx, input.Filename, input.Title, input.Author)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, toDocumentOutput(session), nil
}

func (s *Server) handleAddContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddContentInput,
) (*mcp.CallToolResult, AddOutput, error) {
	overrides, err := domain.ParseStyleOverrides(input.Styles)
	if err != nil {
		return nil, AddOutput{}, err
	}
	n, err := s.ports.Document.AddContent(ctx, input.Filename, input.Items, overrides)
	if err != nil {
		return nil, AddOutput{}, err
	}
	return nil, AddOutput{Filename: filenameOf(input.Filename), Added: n}, nil
}

func (s *Server) handleAddMarkdown(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddMarkdownInput,
) (*mcp.CallToolResult, AddOutput, error) {
	overrides, err := domain.ParseStyleOverrides(input.Styles)
	if err != nil {
		return nil, AddOutput{}, err
	}
	n, err := s.ports.Document.AddMarkdown(ctx, input.Filename, input.Markdown, overrides)
	if err != nil {
		return nil, AddOutput{}, err
	}
	return nil, AddOutput{Filename: filenameOf(input.Filename), Added: n}, nil
}

func (s *Server) handleSaveDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilenameInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	path, err := s.ports.Document.Save(ctx, input.Filename)
	if err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, SaveOutput{Filename: filenameOf(input.Filename), Path: path}, nil
}

func (s *Server) handleCloseDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilenameInput,
) (*mcp.CallToolResult, SaveOutput, error) {
	path, err := s.ports.Document.Close(ctx, input.Filename)
	if err != nil {
		return nil, SaveOutput{}, err
	}
	return nil, SaveOutput{Filename: filenameOf(input.Filename), Path: path}, nil
}

func (s *Server) handleDiscardDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilenameInput,
) (*mcp.CallToolResult, DiscardOutput, error) {
	if err := s.ports.Document.Discard(ctx, input.Filename); err != nil {
		return nil, DiscardOutput{}, err
	}
	return nil, DiscardOutput{Filename: filenameOf(input.Filename), Discarded: true}, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	sessions, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing documents: %w", err)
	}

	output := ListOutput{
		Documents: make([]DocumentOutput, len(sessions)),
		Count:     len(sessions),
	}
	for i := range sessions {
		output.Documents[i] = toDocumentOutput(&sessions[i])
	}
	return nil, output, nil
}

func (s *Server) handleParseMarkdown(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseMarkdownInput,
) (*mcp.CallToolResult, ParseMarkdownOutput, error) {
	items := s.ports.Conversion.ParseMarkdown(input.Markdown)
	if items == nil {
		items = []domain.ContentItem{}
	}
	return nil, ParseMarkdownOutput{Items: items, Count: len(items)}, nil
}

func toDocumentOutput(session *domain.Session) DocumentOutput {
	return DocumentOutput{
		Filename: session.Filename,
		Title:    session.Title,
		Author:   session.Author,
		Elements: len(session.Elements),
	}
}

// filenameOf returns the normalised filename, or the input when it is
// invalid (the service has already rejected it in that case).
func filenameOf(name string) string {
	if normalized, err := domain.NormalizeFilename(name); err == nil {
		return normalized
	}
	return name
}
