package lexer

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// scanNumber accepts 0x-prefixed hex, decimals with '_' separators, a
// fractional part and an exponent: 0xFF, 1_000, 1.5, .5, 2e18, 1.5e-3.
// Denominations (ether, days) are separate identifiers.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if !isHex(lx.cursor.Peek()) {
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected hex digit after 0x")
		}
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		return lx.emit(token.NumberLit, start)
	}

	lx.digits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.digits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// "1e" followed by an identifier char; leave it to the ident scanner
			lx.cursor.Reset(mark)
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "expected digit after exponent")
			return lx.emit(token.NumberLit, start)
		}
		lx.digits()
	}
	return lx.emit(token.NumberLit, start)
}

func (lx *Lexer) digits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
