package token

import (
	"solfmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number, string or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, HexStringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind < kindCount
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAbstract && t.Kind <= KwWhile
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token is an identifier spelled text. Contextual
// keywords such as "from" or "revert" are matched this way.
func (t Token) Is(text string) bool { return t.Kind == Ident && t.Text == text }

// IsComparison reports whether the token is ==, !=, <, <=, > or >=.
func (t Token) IsComparison() bool {
	switch t.Kind {
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}
