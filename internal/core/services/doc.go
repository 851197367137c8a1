// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The content mapper is pure: it depends only on an inline formatter
// and never on the block parser, which produces its input.
package services
