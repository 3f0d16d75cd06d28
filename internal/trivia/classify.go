package trivia

import (
	"strings"

	"solfmt/internal/syntax"
	"solfmt/internal/token"
)

// Classify walks the leaves of tree once, in document order, and assigns
// every comment in the gap before each leaf to exactly one anchor:
//
//   - a comment with a newline before it in the gap, or at the start of the
//     file, is leading trivia of the next leaf (OwnLine)
//   - otherwise, when a newline or the end of file follows it, it is
//     trailing trivia of the previous leaf
//   - otherwise it shares the line with both neighbours; it goes to the
//     next leaf inline and is recorded as an ambiguity
//
// Two or more newlines collapse into a single BlankLine record.
func Classify(tree *syntax.Tree) *Map {
	m := NewMap()
	prev := syntax.NoNode
	for _, leaf := range tree.Leaves(tree.Root) {
		tok := tree.Tok(leaf)
		m.classifyGap(prev, leaf, tok.Leading, tok.Kind == token.EOF)
		prev = leaf
	}
	return m
}

func (m *Map) classifyGap(prev, next syntax.NodeID, gap []token.Trivia, atEOF bool) {
	var leading []Trivia
	newlines := 0
	sawNewline := prev == syntax.NoNode
	for i, tr := range gap {
		switch tr.Kind {
		case token.TriviaSpace:
			continue
		case token.TriviaNewline:
			newlines += strings.Count(tr.Text, "\n")
			sawNewline = true
			continue
		}

		if newlines >= 2 {
			leading = append(leading, Trivia{Kind: BlankLine})
		}
		newlines = 0

		c := Trivia{Kind: commentKind(tr.Kind), Text: tr.Text, Span: tr.Span}
		switch {
		case sawNewline:
			c.OwnLine = true
			leading = append(leading, c)
		case atEOF || newlineFollows(gap[i+1:]):
			m.Add(Anchor{Node: prev, Side: Trailing}, c)
		default:
			leading = append(leading, c)
			m.ambiguities = append(m.ambiguities, Ambiguity{Comment: c, Prev: prev, Next: next})
		}
	}
	if newlines >= 2 {
		leading = append(leading, Trivia{Kind: BlankLine})
	}
	m.Add(Anchor{Node: next, Side: Leading}, leading...)
}

func newlineFollows(rest []token.Trivia) bool {
	for _, tr := range rest {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}
