// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - InlineFormatter: Splits a line of inline markup into styled segments
//   - Normaliser: Turns raw input (Markdown, HTML, text, docx) into content items
//   - NormaliserRegistry: Selects the normaliser for a MIME type
//   - BuilderFactory / DocumentBuilder: Serialise document elements
//   - SessionStore: Persistence of open document sessions
//   - OutputStore: Writes finished documents
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
