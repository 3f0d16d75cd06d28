package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the subtree at id. annotate, when not
// nil, adds a suffix per node (the tree command uses it for trivia).
func (t *Tree) Dump(w io.Writer, id NodeID, annotate func(NodeID) string) error {
	var err error
	var walk func(NodeID, int)
	walk = func(n NodeID, depth int) {
		if err != nil {
			return
		}
		node := t.Node(n)
		line := strings.Repeat("  ", depth) + node.Kind.String()
		if node.Token != nil {
			line += fmt.Sprintf(" %q", node.Token.Text)
		}
		if annotate != nil {
			if extra := annotate(n); extra != "" {
				line += " " + extra
			}
		}
		if _, err = fmt.Fprintln(w, line); err != nil {
			return
		}
		for _, c := range node.Children {
			walk(c, depth+1)
		}
	}
	walk(id, 0)
	return err
}
