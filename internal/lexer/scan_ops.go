package lexer

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// ops is ordered longest first so the scan is greedy.
var ops = []struct {
	text string
	kind token.Kind
}{
	{">>>=", token.SarAssign},
	{">>>", token.Sar},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"**", token.StarStar},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"=>", token.FatArrow},
	{"->", token.Arrow},
	{":=", token.ColonAssign},
}

var singleOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
	'?': token.Question, ':': token.Colon, ';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range ops {
		if lx.tryN(op.text) {
			return lx.emit(op.kind, start)
		}
	}
	b := lx.cursor.Bump()
	if k, ok := singleOps[b]; ok {
		return lx.emit(k, start)
	}
	// swallow the rest of a multi-byte rune so the span stays on a boundary
	if b >= 0x80 {
		for c := lx.cursor.Peek(); c >= 0x80 && c < 0xC0; c = lx.cursor.Peek() {
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
	return tok
}
