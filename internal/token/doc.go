// Package token defines lexical token kinds and trivia for Solidity sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Comments and whitespace never appear in the token stream; they are
//     carried as Token.Leading trivia of the following token.
//   - Elementary type names (uint256, address, bytes32, ...) and contextual
//     words (from, error, revert, receive, fallback, global) are identifiers.
//     The parser recognizes them by text.
package token
