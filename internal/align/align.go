// Package align finds runs of structurally parallel siblings and computes
// the column widths the printer pads them to.
package align

import (
	"slices"
	"strconv"
	"strings"

	"solfmt/internal/syntax"
	"solfmt/internal/token"
	"solfmt/internal/trivia"
)

type GroupKind uint8

const (
	// CallGroup: consecutive `f(a, b);` statements with the same shape.
	CallGroup GroupKind = iota
	// StructFieldGroup: fields of a broken struct literal.
	StructFieldGroup
	// StateVarGroup: state variables of a plain type whose first attribute
	// is the visibility, with the same number of attributes.
	StateVarGroup
)

func (k GroupKind) String() string {
	switch k {
	case CallGroup:
		return "call"
	case StructFieldGroup:
		return "struct-field"
	case StateVarGroup:
		return "state-variable"
	}
	return "?"
}

// Group is an immutable run of members. Widths[i] is the widest rendering
// of column i across members.
type Group struct {
	Kind    GroupKind
	Members []syntax.NodeID
	Widths  []int
}

// Measure renders a node on one line and returns its display width; ok is
// false when the node cannot be rendered on one line.
type Measure func(id syntax.NodeID) (width int, ok bool)

type Options struct {
	Calls          bool
	StructFields   bool
	StateVariables bool

	// MaxWidth caps the padded width of call and state-variable members,
	// counted from the indent column of their container. Zero disables it.
	MaxWidth int
	// Indent returns the column the children of container start at. Nil
	// means column 0.
	Indent func(container syntax.NodeID) int
}

// limit is the width a member of container may take, or 0 for no limit.
func (o Options) limit(container syntax.NodeID) int {
	if o.MaxWidth <= 0 {
		return 0
	}
	col := 0
	if o.Indent != nil {
		col = o.Indent(container)
	}
	return max(o.MaxWidth-col, 1)
}

func DefaultOptions() Options {
	return Options{Calls: true, StructFields: true, StateVariables: true}
}

// Cell is one aligned column of a member: the nodes rendered in it and the
// node after which padding goes.
type Cell struct {
	Nodes []syntax.NodeID
	End   syntax.NodeID
}

// Cells splits member into its columns, or returns nil when member cannot
// take part in a group of kind.
func Cells(tree *syntax.Tree, kind GroupKind, member syntax.NodeID) []Cell {
	switch kind {
	case CallGroup:
		return callCells(tree, member)
	case StructFieldGroup:
		ch := tree.Children(member)
		if tree.Kind(member) != syntax.NamedArgument || len(ch) < 2 {
			return nil
		}
		return []Cell{{Nodes: ch[:2], End: ch[1]}}
	case StateVarGroup:
		return stateVarCells(tree, member)
	}
	return nil
}

// callArgs returns the positional arguments of the call expression in an
// expression statement, each with its following comma (NoNode for the
// last). ok is false for anything else.
func callArgs(tree *syntax.Tree, stmt syntax.NodeID) (callee syntax.NodeID, args, commas []syntax.NodeID, ok bool) {
	if tree.Kind(stmt) != syntax.ExpressionStatement {
		return syntax.NoNode, nil, nil, false
	}
	call := tree.Children(stmt)[0]
	if tree.Kind(call) != syntax.CallExpression {
		return syntax.NoNode, nil, nil, false
	}
	ch := tree.Children(call)
	if len(ch) != 2 || tree.Kind(ch[1]) != syntax.ArgumentList {
		return syntax.NoNode, nil, nil, false
	}
	for _, c := range tree.Children(ch[1]) {
		switch {
		case tree.Kind(c) == syntax.NamedArgumentList:
			return syntax.NoNode, nil, nil, false
		case tree.Kind(c) == syntax.Token:
			if tree.Tok(c).Text == "," && len(args) > len(commas) {
				commas = append(commas, c)
			}
		default:
			args = append(args, c)
		}
	}
	for len(commas) < len(args) {
		commas = append(commas, syntax.NoNode)
	}
	return ch[0], args, commas, len(args) >= 2
}

// comparison splits a comparison expression into lhs, operator and rhs.
func comparison(tree *syntax.Tree, id syntax.NodeID) (lhs, op, rhs syntax.NodeID, ok bool) {
	if tree.Kind(id) != syntax.BinaryExpression {
		return 0, 0, 0, false
	}
	ch := tree.Children(id)
	if len(ch) != 3 || !tree.Tok(ch[1]).IsComparison() {
		return 0, 0, 0, false
	}
	return ch[0], ch[1], ch[2], true
}

func callCells(tree *syntax.Tree, stmt syntax.NodeID) []Cell {
	_, args, commas, ok := callArgs(tree, stmt)
	if !ok {
		return nil
	}
	var cells []Cell
	for i, arg := range args {
		last := []syntax.NodeID{arg}
		if lhs, op, rhs, ok := comparison(tree, arg); ok {
			cells = append(cells, Cell{Nodes: []syntax.NodeID{lhs}, End: lhs}, Cell{Nodes: []syntax.NodeID{op}, End: op})
			last = []syntax.NodeID{rhs}
		}
		end := last[0]
		if commas[i] != syntax.NoNode {
			last = append(last, commas[i])
			end = commas[i]
		}
		cells = append(cells, Cell{Nodes: last, End: end})
	}
	return cells
}

func stateVarCells(tree *syntax.Tree, decl syntax.NodeID) []Cell {
	if tree.Kind(decl) != syntax.StateVariableDeclaration {
		return nil
	}
	ch := tree.Children(decl)
	if len(ch) < 2 || !alignableType(tree.Kind(ch[0])) || !isVisibility(tree.Tok(ch[1])) {
		return nil
	}
	cells := []Cell{{Nodes: ch[:1], End: ch[0]}}
	for _, c := range ch[1:] {
		if tree.Kind(c) == syntax.Identifier {
			break
		}
		cells = append(cells, Cell{Nodes: []syntax.NodeID{c}, End: c})
	}
	if len(cells) < 2 {
		return nil
	}
	return cells
}

// alignableType excludes mappings and function types, whose width would
// push short declarations far to the right.
func alignableType(k syntax.Kind) bool {
	switch k {
	case syntax.ElementaryType, syntax.IdentifierPath, syntax.ArrayType:
		return true
	}
	return false
}

func isVisibility(tok *token.Token) bool {
	if tok == nil {
		return false
	}
	switch tok.Kind {
	case token.KwPublic, token.KwPrivate, token.KwInternal, token.KwExternal:
		return true
	}
	return false
}

// signature identifies the shape members of one group must share.
func signature(tree *syntax.Tree, kind GroupKind, member syntax.NodeID) (string, bool) {
	switch kind {
	case CallGroup:
		callee, args, _, ok := callArgs(tree, member)
		if !ok {
			return "", false
		}
		var sb strings.Builder
		sb.WriteString(tree.Text(callee))
		sb.WriteString("/" + strconv.Itoa(len(args)))
		for _, a := range args {
			sb.WriteString("/" + tree.Kind(a).String())
			if _, _, _, cmp := comparison(tree, a); cmp {
				sb.WriteString("=cmp")
			}
		}
		return sb.String(), true
	case StructFieldGroup:
		return "field", tree.Kind(member) == syntax.NamedArgument
	case StateVarGroup:
		cells := stateVarCells(tree, member)
		if cells == nil {
			return "", false
		}
		return "attrs/" + strconv.Itoa(len(cells)-1), true
	}
	return "", false
}

// ComputeGroups scans siblings in order and returns the groups of kind
// found among them. A run ends at a member whose shape differs, at a
// member preceded by a blank line or an own-line comment (which then
// starts the next run), and at a member that has comments inside or does
// not render on one line (which belongs to no run). With limit > 0, call
// and state-variable members wider than limit belong to no run, and a
// member whose padding would push the run past limit starts a new one.
func ComputeGroups(tree *syntax.Tree, triv *trivia.Map, kind GroupKind, siblings []syntax.NodeID, measure Measure, limit int) []Group {
	if kind == StructFieldGroup {
		limit = 0
	}
	var groups []Group
	var run []syntax.NodeID
	var runSig string
	flush := func() {
		if len(run) >= 2 {
			groups = append(groups, newGroup(tree, kind, run, measure))
		}
		run, runSig = nil, ""
	}
	for _, id := range siblings {
		sig, ok := signature(tree, kind, id)
		if !ok || triv.HasComments(tree, id) {
			flush()
			continue
		}
		if kind != StructFieldGroup {
			if w, flat := measure(id); !flat || (limit > 0 && w > limit) {
				flush()
				continue
			}
		}
		if len(run) > 0 && (sig != runSig || triv.BreaksBefore(tree.FirstLeaf(id))) {
			flush()
		}
		if len(run) > 0 && limit > 0 && paddedWidth(tree, kind, append(slices.Clip(run), id), measure) > limit {
			flush()
		}
		run = append(run, id)
		runSig = sig
	}
	flush()
	return groups
}

func newGroup(tree *syntax.Tree, kind GroupKind, members []syntax.NodeID, measure Measure) Group {
	g := Group{Kind: kind, Members: members}
	for _, m := range members {
		for i, c := range Cells(tree, kind, m) {
			w := cellWidth(c, measure)
			if i >= len(g.Widths) {
				g.Widths = append(g.Widths, w)
			} else {
				g.Widths[i] = max(g.Widths[i], w)
			}
		}
	}
	return g
}

// paddedCells returns the cells of member that receive padding. The last
// argument of a call is followed by ')' only.
func paddedCells(tree *syntax.Tree, kind GroupKind, member syntax.NodeID) []Cell {
	cells := Cells(tree, kind, member)
	if kind == CallGroup && len(cells) > 0 {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// paddedWidth is the widest rendering among members once they are padded
// as one group.
func paddedWidth(tree *syntax.Tree, kind GroupKind, members []syntax.NodeID, measure Measure) int {
	g := newGroup(tree, kind, members, measure)
	widest := 0
	for _, m := range members {
		w, _ := measure(m)
		for j, c := range paddedCells(tree, kind, m) {
			w += max(g.Widths[j]-cellWidth(c, measure), 0)
		}
		widest = max(widest, w)
	}
	return widest
}

func cellWidth(c Cell, measure Measure) int {
	total := 0
	for _, n := range c.Nodes {
		w, _ := measure(n)
		total += w
	}
	return total
}
