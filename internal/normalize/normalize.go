package normalize

import (
	"slices"

	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

// Rewrite describes one removed qualifier.
type Rewrite struct {
	Node      syntax.NodeID // the Parameter or VariableDeclaration
	Qualifier string
	Type      string
	Name      string
	Span      source.Span // of the removed qualifier
}

// Normalize drops the location qualifier from every Parameter and
// VariableDeclaration whose type is a Value type. The input tree and map
// are not modified; when nothing changes they are returned as is.
// Comments of a removed qualifier move to the leading side of the leaf
// that followed it.
func Normalize(tree *syntax.Tree, triv *trivia.Map) (*syntax.Tree, *trivia.Map, []Rewrite) {
	decls := CollectDecls(tree)

	type candidate struct{ decl, loc, ty syntax.NodeID }
	var todo []candidate
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		switch tree.Kind(id) {
		case syntax.Parameter, syntax.VariableDeclaration:
			loc := locationLeaf(tree, id)
			ty := typeChild(tree, id)
			if loc != syntax.NoNode && ty != syntax.NoNode && Classify(tree, ty, decls) == Value {
				todo = append(todo, candidate{decl: id, loc: loc, ty: ty})
			}
		}
		return true
	})
	if len(todo) == 0 {
		return tree, triv, nil
	}

	leaves := tree.Leaves(tree.Root)
	out, outTriv := tree.Clone(), triv.Clone()
	rewrites := make([]Rewrite, 0, len(todo))
	for _, c := range todo {
		children := slices.DeleteFunc(slices.Clone(out.Children(c.decl)), func(id syntax.NodeID) bool {
			return id == c.loc
		})
		out.SetChildren(c.decl, children)

		if i := slices.Index(leaves, c.loc); i >= 0 && i+1 < len(leaves) {
			moveComments(outTriv, c.loc, leaves[i+1])
		}

		rw := Rewrite{
			Node:      c.decl,
			Qualifier: tree.Tok(c.loc).Text,
			Type:      tree.Text(c.ty),
			Span:      tree.Node(c.loc).Span,
		}
		if name := tree.ChildOfKind(c.decl, syntax.Identifier); name != syntax.NoNode {
			rw.Name = tree.Tok(name).Text
		}
		rewrites = append(rewrites, rw)
	}
	return out, outTriv, rewrites
}

// moveComments re-anchors the comments around a removed leaf onto next.
// Whitespace records go away with the leaf.
func moveComments(m *trivia.Map, removed, next syntax.NodeID) {
	leading, trailing := m.Remove(removed)
	var moved []trivia.Trivia
	for _, tr := range leading {
		if tr.IsComment() {
			moved = append(moved, tr)
		}
	}
	for _, tr := range trailing {
		if tr.IsComment() {
			tr.OwnLine = tr.EndsLine()
			moved = append(moved, tr)
		}
	}
	m.Prepend(trivia.Anchor{Node: next, Side: trivia.Leading}, moved...)
}
