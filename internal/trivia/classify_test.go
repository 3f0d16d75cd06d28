package trivia_test

import (
	"slices"
	"testing"

	"solfmt/internal/parser"
	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

func classify(t *testing.T, input string) (*syntax.Tree, *trivia.Map) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.sol", []byte(input)))
	raw, err := parser.Parse(file, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tree, err := syntax.Adapt(raw, file)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	return tree, trivia.Classify(tree)
}

// leafByText returns the n-th leaf (0-based) whose token text is text.
func leafByText(t *testing.T, tree *syntax.Tree, text string, n int) syntax.NodeID {
	t.Helper()
	for _, leaf := range tree.Leaves(tree.Root) {
		if tree.Tok(leaf).Text == text {
			if n == 0 {
				return leaf
			}
			n--
		}
	}
	t.Fatalf("leaf %q not found", text)
	return syntax.NoNode
}

func texts(list []trivia.Trivia) []string {
	var out []string
	for _, tr := range list {
		if tr.IsComment() {
			out = append(out, tr.Text)
		} else {
			out = append(out, "<blank>")
		}
	}
	return out
}

func TestClassifyAttachment(t *testing.T) {
	tree, m := classify(t, `// header
contract C {
    uint a; // trailing a

    // own line before b
    uint b;
    uint /* inline */ c;
}
// end of file
`)
	tests := []struct {
		name string
		got  []trivia.Trivia
		want []string
	}{
		{"header", m.Leading(leafByText(t, tree, "contract", 0)), []string{"// header"}},
		{"trailing a", m.Trailing(leafByText(t, tree, ";", 0)), []string{"// trailing a"}},
		{"before b", m.Leading(leafByText(t, tree, "uint", 1)), []string{"<blank>", "// own line before b"}},
		{"inline", m.Leading(leafByText(t, tree, "c", 0)), []string{"/* inline */"}},
		{"eof", m.Leading(leafByText(t, tree, "", 0)), []string{"// end of file"}},
	}
	for _, tt := range tests {
		if !slices.Equal(texts(tt.got), tt.want) {
			t.Errorf("%s: want %q, got %q", tt.name, tt.want, texts(tt.got))
		}
	}

	own := m.Leading(leafByText(t, tree, "uint", 1))
	if !own[1].OwnLine {
		t.Errorf("comment before b should be OwnLine")
	}
	inline := m.Leading(leafByText(t, tree, "c", 0))
	if inline[0].OwnLine {
		t.Errorf("inline comment should not be OwnLine")
	}
	if len(m.Ambiguities()) != 1 || m.Ambiguities()[0].Comment.Text != "/* inline */" {
		t.Errorf("want the inline comment recorded as the only ambiguity, got %+v", m.Ambiguities())
	}
}

func TestClassifyCapsBlankLines(t *testing.T) {
	tree, m := classify(t, "contract C {\n    uint a;\n\n\n\n    uint b;\n}\n")
	got := m.Leading(leafByText(t, tree, "uint", 1))
	if len(got) != 1 || got[0].Kind != trivia.BlankLine {
		t.Fatalf("want one blank line record, got %+v", got)
	}
}

func TestClassifyKeepsEveryComment(t *testing.T) {
	tree, m := classify(t, `/* a */ pragma solidity ^0.8.0; /* b */
contract C { /* c */ function f(/* d */ uint x /* e */, uint y) external {} // f
/* g */ }`)
	_ = tree
	want := []string{"/* a */", "/* b */", "/* c */", "/* d */", "/* e */", "/* g */", "// f"}
	slices.Sort(want)
	if got := m.CommentTexts(); !slices.Equal(got, want) {
		t.Fatalf("comment multiset\nwant %q\ngot  %q", want, got)
	}
}

func TestHasCommentsIgnoresEdges(t *testing.T) {
	tree, m := classify(t, `function f() {
    // before
    g(1, 2); // after
    g(1, /* inner */ 2);
}`)
	block := syntax.NoNode
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if tree.Kind(id) == syntax.Block {
			block = id
		}
		return true
	})
	stmts := tree.Children(block)
	first, second := stmts[1], stmts[2]
	if m.HasComments(tree, first) {
		t.Errorf("edge comments must not count as inner comments")
	}
	if !m.BreaksBefore(tree.FirstLeaf(first)) {
		t.Errorf("own-line comment before the first statement not reported")
	}
	if !m.HasComments(tree, second) {
		t.Errorf("inner comment not found")
	}
	if m.HasBreaking(tree, second) {
		t.Errorf("inline block comment does not force a break")
	}
}
