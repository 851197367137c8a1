package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DocxExtension is appended to session filenames that lack it.
const DocxExtension = ".docx"

// Session accumulates document elements for one output filename
// until it is saved or discarded.
type Session struct {
	// ID is the unique identifier for the session.
	ID string `json:"id"`

	// Filename keys the session and names the output file.
	Filename string `json:"filename"`

	// Title is written to the document properties.
	Title string `json:"title,omitempty"`

	// Author is written to the document properties.
	Author string `json:"author,omitempty"`

	// Elements are the mapped elements in document order.
	Elements []DocumentElement `json:"elements"`

	// CreatedAt is when the session was opened.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when content was last added.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta returns the document properties of the session.
func (s *Session) Meta() DocumentMeta {
	return DocumentMeta{Title: s.Title, Author: s.Author}
}

// DocumentMeta holds document-level properties.
type DocumentMeta struct {
	Title  string
	Author string
}

// NormalizeFilename trims the name and ensures a .docx extension.
func NormalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(name), DocxExtension) {
		name += DocxExtension
	}
	return name, nil
}
