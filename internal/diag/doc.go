// Package diag defines the diagnostic model shared by all analysis phases.
//
// Diagnostic is the central record: severity, a compact numeric Code with a
// stable string form, a short message, the primary source.Span, optional
// notes (secondary spans adding context) and optional fix suggestions
// (structured edits the CLI can render; the analyzer never applies them
// itself).
//
// Phases emit through the Reporter contract so producers stay decoupled from
// storage and formatting. BagReporter aggregates into a Bag, which supports
// deterministic sorting and deduplication — identical input must yield a
// byte-identical diagnostic sequence across runs.
//
// Rendering lives in internal/diagfmt; this package does no IO.
package diag
