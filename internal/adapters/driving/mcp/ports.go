package mcp

import (
	"github.com/custodia-labs/docwright/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Document manages document sessions.
	Document driving.DocumentService

	// Conversion parses markdown for the parse_markdown tool.
	Conversion driving.ConversionService

	// Settings supplies the configured style sheet. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Conversion == nil {
		return ErrMissingConversionService
	}
	return nil
}
