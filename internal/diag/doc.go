// Package diag defines the diagnostic model shared by the lexer, parser, and
// style rules.
//
// Diagnostic is the central record: severity, a stable numeric Code
// (LEX/SYN/STY/IO ranges), a message, the primary source.Span, optional Notes,
// and optional Fixes. Fixes are data-only edit lists; internal/fix applies
// them and internal/diagfmt renders them.
//
// Producers emit through a Reporter so storage stays decoupled; BagReporter
// aggregates into a Bag, which supports capacity limits, deterministic
// sorting, and deduplication. Keep the model deterministic and side-effect
// free: diagnostics are serialized for the result cache.
package diag
