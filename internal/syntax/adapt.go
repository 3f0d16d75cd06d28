package syntax

import (
	"errors"
	"fmt"

	"solfmt/internal/parser"
	"solfmt/internal/source"
)

// ErrUnrecognizedNodeKind is matched by every *UnrecognizedNodeKindError.
var ErrUnrecognizedNodeKind = errors.New("unrecognized node kind")

// UnrecognizedNodeKindError reports a raw node type outside the closed
// kind table. Formatting the file cannot continue.
type UnrecognizedNodeKindError struct {
	Type string
	Span source.Span
}

func (e *UnrecognizedNodeKindError) Error() string {
	return fmt.Sprintf("unrecognized node kind %q at %s", e.Type, e.Span)
}

func (e *UnrecognizedNodeKindError) Is(target error) bool {
	return target == ErrUnrecognizedNodeKind
}

// Adapt converts the raw parser tree into an arena Tree. Every raw type
// must resolve through the kind table; leaves keep their token (trivia
// included) for the classifier.
func Adapt(raw *parser.Node, file *source.File) (*Tree, error) {
	if raw == nil {
		return nil, errors.New("adapt: nil tree")
	}
	count := 0
	raw.Walk(func(*parser.Node) { count++ })
	t := newTree(file, count)
	root, err := t.adapt(raw)
	if err != nil {
		return nil, err
	}
	t.Root = root
	return t, nil
}

func (t *Tree) adapt(raw *parser.Node) (NodeID, error) {
	kind, ok := KindOf(raw.Type)
	if !ok || kind.IsLeaf() != raw.IsLeaf() {
		return NoNode, &UnrecognizedNodeKindError{Type: raw.Type, Span: raw.Span}
	}
	id := t.alloc(Node{Kind: kind, Span: raw.Span, Token: raw.Token})
	if kind.IsLeaf() {
		return id, nil
	}
	children := make([]NodeID, 0, len(raw.Children))
	for _, c := range raw.Children {
		cid, err := t.adapt(c)
		if err != nil {
			return NoNode, err
		}
		t.parent[cid] = id
		children = append(children, cid)
	}
	t.nodes[id].Children = children
	return id, nil
}
