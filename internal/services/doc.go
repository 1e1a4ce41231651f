// Package services defines shared utilities consumed by the command layer
// and the external tool clients.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across the compiler, the parsers, and the
//     process clients.
//   - Context helpers that stamp run identifiers and operation names for
//     logging.
//
// Use these helpers when wiring new commands so error handling and
// observability stay uniform across the tool.
package services
