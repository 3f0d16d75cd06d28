// Package diag defines the diagnostic model shared by the lexer, the parser
// and the formatting pipeline.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX1001, SYN2001, FMT3001), a message, a primary span and
// optional notes. Producers emit through a Reporter; BagReporter collects
// into a Bag which supports limits, deterministic sorting and dedup.
//
// Rendering lives in internal/diagfmt. This package performs no IO.
package diag
