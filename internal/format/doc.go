// Package format prints an adapted Solidity tree back to text.
//
// The printer walks the tree once. Layout comes from internal/layout, padding
// from an internal/align table, and comments and blank lines from an
// internal/trivia map. FormatFile runs the whole pipeline for one file.
package format
