package lexer

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// collectLeadingTrivia gathers the trivia before the next significant token:
//   - runs of ' ', '\t', '\r', '\f' become one TriviaSpace
//   - runs of '\n' become one TriviaNewline (Text keeps every '\n')
//   - "//..." is TriviaLineComment, "///..." TriviaDocLine
//   - "/*...*/" is TriviaBlockComment, "/**...*/" TriviaDocBlock
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
			lx.scanComment()
			continue
		}
		return
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f'
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Bump() == '/' {
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' {
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(kind, start)
		return
	}

	// "/**/" is an empty block comment, not a doc comment.
	kind := token.TriviaBlockComment
	if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/' {
		kind = token.TriviaDocBlock
	}
	closed := false
	for !lx.cursor.EOF() {
		if lx.tryN("*/") {
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(kind, start)
}
