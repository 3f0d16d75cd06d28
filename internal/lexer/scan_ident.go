package lexer

import (
	"solfmt/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z_$][A-Za-z0-9_$]* and resolves keywords.
// The prefixes hex and unicode directly followed by a quote start a string
// literal instead.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if q := lx.cursor.Peek(); q == '"' || q == '\'' {
		switch text {
		case "hex":
			return lx.scanString(start, token.HexStringLit)
		case "unicode":
			return lx.scanString(start, token.StringLit)
		}
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
