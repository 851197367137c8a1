// Package domain defines the core entities for docwright.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentItem: An abstract unit of content (paragraph, heading, list)
//   - TextSegment: An inline run with uniform bold/italic/link styling
//   - StyleSheet: Style buckets keyed by a closed StyleKey enumeration
//   - DocumentElement: A styled paragraph-level unit for a builder
//   - Session: Accumulated elements for one output file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
