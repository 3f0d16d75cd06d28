package align

import (
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

// Table is the read-only result of Compute, keyed by node id.
type Table struct {
	groups   []*Group
	byMember map[syntax.NodeID]*Group
	pads     map[syntax.NodeID]int
}

// Group returns the group id is a member of, or nil.
func (t *Table) Group(id syntax.NodeID) *Group {
	if t == nil {
		return nil
	}
	return t.byMember[id]
}

// PadAfter returns the number of spaces to write right after node id.
func (t *Table) PadAfter(id syntax.NodeID) int {
	if t == nil {
		return 0
	}
	return t.pads[id]
}

func (t *Table) Groups() []*Group {
	if t == nil {
		return nil
	}
	return t.groups
}

// Compute finds every group in tree. Call groups are searched among the
// statements of each block, state-variable groups among contract members
// and file-level declarations, and struct-field groups among the fields of
// each struct literal with more than one field.
func Compute(tree *syntax.Tree, triv *trivia.Map, measure Measure, opts Options) *Table {
	t := &Table{
		byMember: make(map[syntax.NodeID]*Group),
		pads:     make(map[syntax.NodeID]int),
	}
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		switch tree.Kind(id) {
		case syntax.Block:
			if opts.Calls {
				t.add(tree, ComputeGroups(tree, triv, CallGroup, tree.Children(id), measure, opts.limit(id)), measure)
			}
		case syntax.ContractBody, syntax.SourceUnit:
			if opts.StateVariables {
				t.add(tree, ComputeGroups(tree, triv, StateVarGroup, tree.Children(id), measure, opts.limit(id)), measure)
			}
		case syntax.NamedArgumentList:
			if opts.StructFields && IsStructLiteral(tree, id) {
				fields := Fields(tree, id)
				if len(fields) > 1 {
					t.add(tree, ComputeGroups(tree, triv, StructFieldGroup, fields, measure, 0), measure)
				}
			}
		}
		return true
	})
	return t
}

func (t *Table) add(tree *syntax.Tree, groups []Group, measure Measure) {
	for i := range groups {
		g := &groups[i]
		t.groups = append(t.groups, g)
		for _, m := range g.Members {
			t.byMember[m] = g
			for j, c := range paddedCells(tree, g.Kind, m) {
				if pad := g.Widths[j] - cellWidth(c, measure); pad > 0 {
					t.pads[c.End] = pad
				}
			}
		}
	}
}

// IsStructLiteral reports whether a named argument list is the argument of
// a call, as opposed to call options.
func IsStructLiteral(tree *syntax.Tree, id syntax.NodeID) bool {
	return tree.Kind(tree.Parent(id)) == syntax.ArgumentList
}

// Fields returns the NamedArgument children of a named argument list.
func Fields(tree *syntax.Tree, id syntax.NodeID) []syntax.NodeID {
	var out []syntax.NodeID
	for _, c := range tree.Children(id) {
		if tree.Kind(c) == syntax.NamedArgument {
			out = append(out, c)
		}
	}
	return out
}
