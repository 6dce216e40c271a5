// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the parser and the switch validation/unrolling pass.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages. The semantic pass stores the
//     rendered source snippet of the offending node as the first note.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter. BagReporter aggregates into a Bag, LogReporter
// writes to a slog.Logger, MultiReporter fans out to several reporters.
// Rendering for terminals and JSON lives in internal/diagfmt.
package diag
