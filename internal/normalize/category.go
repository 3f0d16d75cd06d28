// Package normalize removes data-location qualifiers that a declaration's
// type cannot carry.
package normalize

import (
	"solfmt/internal/syntax"
)

// Category splits types by whether a data location is meaningful for them.
type Category uint8

const (
	// Reference types live in memory, storage or calldata.
	Reference Category = iota
	// Value types are copied; a location qualifier on them is redundant.
	Value
)

func (c Category) String() string {
	if c == Value {
		return "value"
	}
	return "reference"
}

// Decls maps names declared in the file to the category of the type they
// introduce.
type Decls map[string]Category

// CollectDecls records contracts, interfaces, libraries, enums and user
// value types as Value and structs as Reference. A name declared twice
// with different categories is Reference.
func CollectDecls(tree *syntax.Tree) Decls {
	decls := Decls{}
	record := func(id syntax.NodeID, cat Category) {
		name := tree.ChildOfKind(id, syntax.Identifier)
		if name == syntax.NoNode {
			return
		}
		text := tree.Tok(name).Text
		if prev, ok := decls[text]; ok && prev != cat {
			cat = Reference
		}
		decls[text] = cat
	}
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		switch tree.Kind(id) {
		case syntax.ContractDefinition, syntax.EnumDefinition, syntax.UserDefinedValueType:
			record(id, Value)
		case syntax.StructDefinition:
			record(id, Reference)
		case syntax.FunctionDefinition, syntax.ModifierDefinition:
			return false
		}
		return true
	})
	return decls
}

// Classify returns the category of the type node ty. Names that do not
// resolve to a declaration in the file are Reference, so their qualifier
// is never removed.
func Classify(tree *syntax.Tree, ty syntax.NodeID, decls Decls) Category {
	switch tree.Kind(ty) {
	case syntax.ElementaryType:
		switch tree.Tok(tree.FirstLeaf(ty)).Text {
		case "string", "bytes":
			return Reference
		}
		return Value
	case syntax.FunctionType:
		return Value
	case syntax.IdentifierPath:
		last := tree.LastLeaf(ty)
		if cat, ok := decls[tree.Tok(last).Text]; ok {
			return cat
		}
		return Reference
	}
	return Reference
}

// locationLeaf returns the memory/storage/calldata child of a declaration.
func locationLeaf(tree *syntax.Tree, decl syntax.NodeID) syntax.NodeID {
	for _, c := range tree.Children(decl) {
		if tok := tree.Tok(c); tok != nil && tok.Kind.DataLocation() {
			return c
		}
	}
	return syntax.NoNode
}

func typeChild(tree *syntax.Tree, decl syntax.NodeID) syntax.NodeID {
	for _, c := range tree.Children(decl) {
		if tree.Kind(c).IsType() {
			return c
		}
	}
	return syntax.NoNode
}

