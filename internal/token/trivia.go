package token

import "solfmt/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment  // // ...
	TriviaBlockComment // /* ... */
	TriviaDocLine      // /// ...
	TriviaDocBlock     // /** ... */
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any kind of comment.
func (t Trivia) IsComment() bool {
	return t.Kind >= TriviaLineComment
}

// EndsLine reports whether the comment runs to the end of its line.
func (t Trivia) EndsLine() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaDocLine
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line-comment"
	case TriviaBlockComment:
		return "block-comment"
	case TriviaDocLine:
		return "doc-line"
	case TriviaDocBlock:
		return "doc-block"
	}
	return "unknown"
}
