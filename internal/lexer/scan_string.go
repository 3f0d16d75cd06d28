package lexer

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// scanString scans a single- or double-quoted literal starting at the quote
// under the cursor. start may point earlier when a hex/unicode prefix was
// consumed. Escapes are skipped, not validated.
func (lx *Lexer) scanString(start Mark, kind token.Kind) token.Token {
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return lx.emit(kind, start)
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
