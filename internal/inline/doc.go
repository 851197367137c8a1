// Package inline splits a line of lightweight markup into styled text
// segments.
//
// The recognised grammar is deliberately small:
//
//   - **bold** and *italic* (asterisks only; underscores are literal)
//   - [label](url) links, whose labels may themselves carry emphasis
//   - line breaks inside multi-line text
//
// Everything else, including headings and list markers, is returned as
// literal text. Parsing is built on goldmark with a restricted set of
// parsers, so delimiter matching follows the CommonMark emphasis rules
// and nesting such as ***both*** resolves to a bold and italic run.
//
// Render is the inverse of Format for well-formed input.
package inline
