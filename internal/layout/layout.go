// Package layout is the per-kind policy table the printer consults: how a
// node breaks, how far its broken contents indent and what separates its
// elements.
package layout

import "solfmt/internal/syntax"

type BreakPolicy uint8

const (
	// Preserve keeps the original line breaks between children.
	Preserve BreakPolicy = iota
	// Always puts every element on its own line.
	Always
	// Fit renders on one line when the construct fits the width, otherwise
	// one element per line.
	Fit
	// Never keeps the node on one line.
	Never
)

func (b BreakPolicy) String() string {
	switch b {
	case Preserve:
		return "preserve"
	case Always:
		return "always"
	case Fit:
		return "fit"
	case Never:
		return "never"
	}
	return "?"
}

type Rule struct {
	Indent    int
	Break     BreakPolicy
	Separator string
}

// Default applies to kinds missing from the table.
var Default = Rule{Break: Preserve, Separator: " "}

var (
	body   = Rule{Indent: 1, Break: Always, Separator: "\n"}
	list   = Rule{Indent: 1, Break: Fit, Separator: ", "}
	inline = Rule{Break: Never, Separator: " "}
)

var rules = map[syntax.Kind]Rule{
	syntax.SourceUnit:   {Break: Always, Separator: "\n"},
	syntax.ContractBody: body,
	syntax.StructBody:   body,
	syntax.EnumBody:     body,
	syntax.Block:        body,

	syntax.ParameterList:            list,
	syntax.ArgumentList:             list,
	syntax.TupleExpression:          list,
	syntax.ArrayLiteral:             list,
	syntax.ImportList:               list,
	syntax.UsingList:                list,
	syntax.OverrideList:             list,
	syntax.VariableDeclarationTuple: list,
	// More than one field always breaks; a single field fits like a list.
	syntax.NamedArgumentList: {Indent: 1, Break: Always, Separator: ", "},
	// Function and modifier headers are measured as a whole; the parameter
	// list is what breaks.
	syntax.FunctionDefinition: {Indent: 1, Break: Fit, Separator: " "},
	syntax.ModifierDefinition: {Indent: 1, Break: Fit, Separator: " "},

	syntax.InheritanceList: {Indent: 1, Break: Preserve, Separator: ", "},

	syntax.PragmaDirective:          inline,
	syntax.ImportDirective:          inline,
	syntax.ImportSymbol:             inline,
	syntax.ContractDefinition:       inline,
	syntax.InheritanceSpecifier:     inline,
	syntax.StateVariableDeclaration: inline,
	syntax.StructDefinition:         inline,
	syntax.StructMember:             inline,
	syntax.EnumDefinition:           inline,
	syntax.EventDefinition:          inline,
	syntax.ErrorDefinition:          inline,
	syntax.UserDefinedValueType:     inline,
	syntax.UsingDirective:           inline,
	syntax.UsingSymbol:              inline,
	syntax.ModifierInvocation:       inline,
	syntax.OverrideSpecifier:        inline,
	syntax.Parameter:                inline,
	syntax.ReturnParameters:         inline,

	syntax.UncheckedBlock:               inline,
	syntax.VariableDeclarationStatement: inline,
	syntax.VariableDeclaration:          inline,
	syntax.ExpressionStatement:          inline,
	syntax.IfStatement:                  inline,
	syntax.ForStatement:                 inline,
	syntax.WhileStatement:               inline,
	syntax.DoWhileStatement:             inline,
	syntax.ReturnStatement:              inline,
	syntax.EmitStatement:                inline,
	syntax.RevertStatement:              inline,
	syntax.BreakStatement:               inline,
	syntax.ContinueStatement:            inline,
	syntax.TryStatement:                 inline,
	syntax.CatchClause:                  inline,
	syntax.AssemblyStatement:            inline,
	syntax.AssemblyFlags:                {Break: Never, Separator: ", "},
	syntax.PlaceholderStatement:         inline,

	syntax.Assignment:           inline,
	syntax.Ternary:              inline,
	syntax.BinaryExpression:     inline,
	syntax.UnaryExpression:      {Break: Never},
	syntax.PostfixExpression:    {Break: Never},
	syntax.CallExpression:       {Break: Never},
	syntax.CallOptions:          {Break: Never},
	syntax.NamedArgument:        inline,
	syntax.MemberExpression:     {Break: Never},
	syntax.IndexExpression:      {Break: Never},
	syntax.IndexRangeExpression: {Break: Never},
	syntax.NewExpression:        inline,
	syntax.Literal:              inline,

	syntax.ElementaryType: inline,
	syntax.IdentifierPath: {Break: Never},
	syntax.ArrayType:      {Break: Never},
	syntax.MappingType:    inline,
	syntax.FunctionType:   inline,

	syntax.Identifier: {Break: Never},
	syntax.Token:      {Break: Never},
	syntax.Verbatim:   {Break: Never},
}

// Lookup returns the rule registered for k.
func Lookup(k syntax.Kind) (Rule, bool) {
	r, ok := rules[k]
	return r, ok
}

// RuleFor returns the rule for k, falling back to Default.
func RuleFor(k syntax.Kind) Rule {
	if r, ok := rules[k]; ok {
		return r
	}
	return Default
}
