package syntax

import (
	"strings"

	"fortio.org/safecast"

	"solfmt/internal/source"
	"solfmt/internal/token"
)

// NodeID indexes a node in its Tree. The zero value is NoNode.
type NodeID uint32

const NoNode NodeID = 0

// Node is a single arena entry. Leaves carry Token and no children.
type Node struct {
	Kind     Kind
	Span     source.Span
	Children []NodeID
	Token    *token.Token
}

// Tree is an arena of nodes for one file. Trees are never mutated after
// they are handed out; rewrites go through Clone.
type Tree struct {
	File   *source.File
	Root   NodeID
	nodes  []Node
	parent []NodeID
}

func newTree(file *source.File, capacity int) *Tree {
	return &Tree{
		File:   file,
		nodes:  make([]Node, 1, capacity+1),
		parent: make([]NodeID, 1, capacity+1),
	}
}

func (t *Tree) alloc(n Node) NodeID {
	id, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(err)
	}
	t.nodes = append(t.nodes, n)
	t.parent = append(t.parent, NoNode)
	return NodeID(id)
}

// Len returns the number of nodes, NoNode excluded.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Node returns the node for id, or nil for NoNode and out-of-range ids.
func (t *Tree) Node(id NodeID) *Node {
	if id == NoNode || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return Invalid
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Parent returns the parent of id, NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if int(id) >= len(t.parent) {
		return NoNode
	}
	return t.parent[id]
}

// Tok returns the token of a leaf, nil for interior nodes.
func (t *Tree) Tok(id NodeID) *token.Token {
	if n := t.Node(id); n != nil {
		return n.Token
	}
	return nil
}

// Walk visits id and its descendants in document order. Returning false
// from fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range t.Children(id) {
		t.Walk(c, fn)
	}
}

// Leaves returns the leaves under id in document order.
func (t *Tree) Leaves(id NodeID) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		if t.Kind(n).IsLeaf() {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}

// FirstLeaf returns the first leaf under id, NoNode if there is none.
func (t *Tree) FirstLeaf(id NodeID) NodeID {
	for {
		n := t.Node(id)
		if n == nil {
			return NoNode
		}
		if n.Kind.IsLeaf() {
			return id
		}
		if len(n.Children) == 0 {
			return NoNode
		}
		id = n.Children[0]
	}
}

// LastLeaf returns the last leaf under id, NoNode if there is none.
func (t *Tree) LastLeaf(id NodeID) NodeID {
	for {
		n := t.Node(id)
		if n == nil {
			return NoNode
		}
		if n.Kind.IsLeaf() {
			return id
		}
		if len(n.Children) == 0 {
			return NoNode
		}
		id = n.Children[len(n.Children)-1]
	}
}

// Text joins the token texts of the leaves under id with single spaces
// where the source had whitespace between them. It reflects rewrites,
// unlike slicing the file by span.
func (t *Tree) Text(id NodeID) string {
	var sb strings.Builder
	for i, leaf := range t.Leaves(id) {
		tok := t.Tok(leaf)
		if tok.Kind == token.EOF {
			continue
		}
		if i > 0 && len(tok.Leading) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// ChildOfKind returns the first direct child of id with kind k.
func (t *Tree) ChildOfKind(id NodeID, k Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			return c
		}
	}
	return NoNode
}

// ChildToken returns the first direct leaf child of id with token kind k.
func (t *Tree) ChildToken(id NodeID, k token.Kind) NodeID {
	for _, c := range t.Children(id) {
		if tok := t.Tok(c); tok != nil && tok.Kind == k {
			return c
		}
	}
	return NoNode
}

// Clone returns a copy of t that shares child slices and tokens with it.
// SetChildren and SetToken on the clone allocate fresh ones, so t stays
// untouched and node ids keep their meaning in both trees.
func (t *Tree) Clone() *Tree {
	return &Tree{
		File:   t.File,
		Root:   t.Root,
		nodes:  append([]Node(nil), t.nodes...),
		parent: append([]NodeID(nil), t.parent...),
	}
}

// SetChildren gives id a fresh child slice. Only valid on a tree obtained
// from Clone, before it is shared.
func (t *Tree) SetChildren(id NodeID, children []NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}
	n.Children = append([]NodeID(nil), children...)
	for _, c := range children {
		t.parent[c] = id
	}
}

// SetToken replaces the token of leaf id with a copy of tok.
func (t *Tree) SetToken(id NodeID, tok token.Token) {
	n := t.Node(id)
	if n == nil || !n.Kind.IsLeaf() {
		return
	}
	n.Token = &tok
}
