package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

// FormatTree writes an outline of the adapted tree. When triv is not nil
// each leaf is annotated with the trivia attached to it, e.g.
//
//	StateVariableDeclaration
//	  ElementaryType "uint256" [lead: doc]
//	  Ident "owner"
//	  Semicolon ";" [trail: line]
func FormatTree(w io.Writer, tree *syntax.Tree, triv *trivia.Map) error {
	var annotate func(syntax.NodeID) string
	if triv != nil {
		annotate = func(id syntax.NodeID) string {
			var parts []string
			if lead := triv.Leading(id); len(lead) > 0 {
				parts = append(parts, "lead: "+trivKinds(lead))
			}
			if trail := triv.Trailing(id); len(trail) > 0 {
				parts = append(parts, "trail: "+trivKinds(trail))
			}
			if len(parts) == 0 {
				return ""
			}
			return fmt.Sprintf("[%s]", strings.Join(parts, "; "))
		}
	}
	return tree.Dump(w, tree.Root, annotate)
}

func trivKinds(list []trivia.Trivia) string {
	kinds := make([]string, len(list))
	for i, tr := range list {
		kinds[i] = tr.Kind.String()
	}
	return strings.Join(kinds, ", ")
}
