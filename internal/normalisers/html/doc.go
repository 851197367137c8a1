// Package html provides a Normaliser implementation for HTML documents.
// It walks the parsed DOM and keeps the structure docwright can render:
// headings, paragraphs, flat lists, blockquotes and rules. Bold, italic
// and links are re-encoded as inline markup so formatting survives.
package html
