// Package trivia lifts the lexer's per-token trivia into a map of comments
// and blank lines anchored on the leading or trailing side of leaves.
package trivia

import (
	"slices"
	"strings"

	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/token"
)

type Kind uint8

const (
	BlankLine Kind = iota
	LineComment
	BlockComment
	DocComment
)

func (k Kind) String() string {
	switch k {
	case BlankLine:
		return "blank"
	case LineComment:
		return "line"
	case BlockComment:
		return "block"
	case DocComment:
		return "doc"
	}
	return "?"
}

// Trivia is one comment or a blank-line marker. Text is the comment
// exactly as written.
type Trivia struct {
	Kind    Kind
	Text    string
	OwnLine bool
	Span    source.Span
}

func (t Trivia) IsComment() bool { return t.Kind != BlankLine }

// EndsLine reports whether nothing may follow the comment on its line.
func (t Trivia) EndsLine() bool {
	return t.IsComment() && strings.HasPrefix(t.Text, "//")
}

type Side uint8

const (
	Leading Side = iota
	Trailing
)

type Anchor struct {
	Node syntax.NodeID
	Side Side
}

// Ambiguity is a comment that shared its line with the tokens on both
// sides. It was attached to the leading side of Next.
type Ambiguity struct {
	Comment Trivia
	Prev    syntax.NodeID
	Next    syntax.NodeID
}

// Map holds the classified trivia of one tree.
type Map struct {
	entries     map[Anchor][]Trivia
	ambiguities []Ambiguity
}

func NewMap() *Map {
	return &Map{entries: make(map[Anchor][]Trivia)}
}

func (m *Map) Leading(id syntax.NodeID) []Trivia {
	return m.entries[Anchor{Node: id, Side: Leading}]
}

func (m *Map) Trailing(id syntax.NodeID) []Trivia {
	return m.entries[Anchor{Node: id, Side: Trailing}]
}

// Add appends to the list at a. The stored slice is never shared with a
// clone.
func (m *Map) Add(a Anchor, tr ...Trivia) {
	if len(tr) == 0 {
		return
	}
	cur := m.entries[a]
	next := make([]Trivia, 0, len(cur)+len(tr))
	next = append(next, cur...)
	m.entries[a] = append(next, tr...)
}

// Remove drops both sides of id and returns what was there.
func (m *Map) Remove(id syntax.NodeID) (leading, trailing []Trivia) {
	leading, trailing = m.Leading(id), m.Trailing(id)
	delete(m.entries, Anchor{Node: id, Side: Leading})
	delete(m.entries, Anchor{Node: id, Side: Trailing})
	return leading, trailing
}

// Prepend inserts tr before the existing list at a.
func (m *Map) Prepend(a Anchor, tr ...Trivia) {
	if len(tr) == 0 {
		return
	}
	next := make([]Trivia, 0, len(tr)+len(m.entries[a]))
	next = append(next, tr...)
	m.entries[a] = append(next, m.entries[a]...)
}

func (m *Map) Ambiguities() []Ambiguity { return m.ambiguities }

// Clone copies the map. Lists are replaced, never edited in place, so
// sharing them is safe.
func (m *Map) Clone() *Map {
	c := &Map{
		entries:     make(map[Anchor][]Trivia, len(m.entries)),
		ambiguities: slices.Clone(m.ambiguities),
	}
	for k, v := range m.entries {
		c.entries[k] = v
	}
	return c
}

// CommentTexts returns every comment text, sorted.
func (m *Map) CommentTexts() []string {
	var out []string
	for _, list := range m.entries {
		for _, tr := range list {
			if tr.IsComment() {
				out = append(out, tr.Text)
			}
		}
	}
	slices.Sort(out)
	return out
}

// HasComments reports whether any comment sits strictly inside the subtree
// at id: the first leaf's leading side and the last leaf's trailing side
// belong to the surroundings and are ignored.
func (m *Map) HasComments(tree *syntax.Tree, id syntax.NodeID) bool {
	return m.inner(tree, id, func(tr Trivia) bool { return tr.IsComment() })
}

// HasBreaking reports whether the subtree at id contains a comment that
// forces a line break: an own-line leading comment or any trailing comment,
// outer edges excluded.
func (m *Map) HasBreaking(tree *syntax.Tree, id syntax.NodeID) bool {
	leaves := tree.Leaves(id)
	for i, leaf := range leaves {
		if i > 0 {
			for _, tr := range m.Leading(leaf) {
				if tr.IsComment() && (tr.OwnLine || tr.EndsLine()) {
					return true
				}
			}
		}
		if i < len(leaves)-1 && hasComment(m.Trailing(leaf)) {
			return true
		}
	}
	return false
}

// BreaksBefore reports whether leaf is preceded by a blank line or an
// own-line comment.
func (m *Map) BreaksBefore(leaf syntax.NodeID) bool {
	for _, tr := range m.Leading(leaf) {
		if tr.Kind == BlankLine || tr.OwnLine {
			return true
		}
	}
	return false
}

func (m *Map) inner(tree *syntax.Tree, id syntax.NodeID, match func(Trivia) bool) bool {
	leaves := tree.Leaves(id)
	for i, leaf := range leaves {
		if i > 0 && slices.ContainsFunc(m.Leading(leaf), match) {
			return true
		}
		if i < len(leaves)-1 && slices.ContainsFunc(m.Trailing(leaf), match) {
			return true
		}
	}
	return false
}

func hasComment(list []Trivia) bool {
	return slices.ContainsFunc(list, Trivia.IsComment)
}

func commentKind(k token.TriviaKind) Kind {
	switch k {
	case token.TriviaLineComment:
		return LineComment
	case token.TriviaDocLine, token.TriviaDocBlock:
		return DocComment
	default:
		return BlockComment
	}
}
