package format

import (
	"fmt"

	"solfmt/internal/align"
	"solfmt/internal/layout"
	"solfmt/internal/syntax"
)

// Options controls layout. The zero value of a width means its default.
type Options struct {
	MaxWidth    int
	IndentWidth int
	UseTabs     bool

	AlignCalls          bool
	AlignStructFields   bool
	AlignStateVariables bool

	NormalizeLocations bool
}

// DefaultOptions returns the options used when no config file is present.
func DefaultOptions() Options {
	return Options{
		MaxWidth:            100,
		IndentWidth:         4,
		AlignCalls:          true,
		AlignStructFields:   true,
		AlignStateVariables: true,
		NormalizeLocations:  true,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = 100
	}
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

// Fingerprint identifies the effective layout of o. Two options with the
// same fingerprint print every input identically.
func (o Options) Fingerprint() string {
	o = o.withDefaults()
	return fmt.Sprintf("w%d i%d t%t ac%t as%t av%t nl%t",
		o.MaxWidth, o.IndentWidth, o.UseTabs,
		o.AlignCalls, o.AlignStructFields, o.AlignStateVariables, o.NormalizeLocations)
}

func (o Options) alignOptions(tree *syntax.Tree) align.Options {
	o = o.withDefaults()
	return align.Options{
		Calls:          o.AlignCalls,
		StructFields:   o.AlignStructFields,
		StateVariables: o.AlignStateVariables,
		MaxWidth:       o.MaxWidth,
		Indent: func(container syntax.NodeID) int {
			return indentLevel(tree, container) * o.IndentWidth
		},
	}
}

// indentLevel is the level the printer indents the children of container
// to: one per enclosing body, plus one per brace pair added around a
// single-statement control body.
func indentLevel(tree *syntax.Tree, container syntax.NodeID) int {
	level := 0
	for n := container; n != syntax.NoNode; n = tree.Parent(n) {
		if r := layout.RuleFor(tree.Kind(n)); r.Break == layout.Always {
			level += r.Indent
		}
		if isBracedBody(tree, n) {
			level++
		}
	}
	return level
}

// isBracedBody reports whether stmt is a control body the printer wraps in
// braces it adds itself.
func isBracedBody(tree *syntax.Tree, stmt syntax.NodeID) bool {
	k := tree.Kind(stmt)
	if k == syntax.Block {
		return false
	}
	parent := tree.Parent(stmt)
	ch := tree.Children(parent)
	switch tree.Kind(parent) {
	case syntax.IfStatement:
		if len(ch) >= 5 && ch[4] == stmt {
			return true
		}
		return len(ch) >= 7 && ch[6] == stmt && k != syntax.IfStatement
	case syntax.ForStatement, syntax.WhileStatement:
		return len(ch) >= 2 && ch[len(ch)-1] == stmt
	case syntax.DoWhileStatement:
		return len(ch) >= 3 && ch[1] == stmt
	}
	return false
}
