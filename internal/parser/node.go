package parser

import (
	"solfmt/internal/source"
	"solfmt/internal/token"
)

// Node is one node of the raw concrete syntax tree. Interior nodes carry a
// grammar rule name in Type and their children in source order; leaves
// ("token", "identifier", "verbatim") carry the token they were built from.
// Every source token of the file is reachable from the root, EOF included.
type Node struct {
	Type     string
	Span     source.Span
	Children []*Node
	Token    *token.Token
}

// Raw node types.
const (
	TypeSourceUnit           = "source_unit"
	TypePragma               = "pragma_directive"
	TypeImport               = "import_directive"
	TypeImportList           = "import_list"
	TypeImportSymbol         = "import_symbol"
	TypeContract             = "contract_definition"
	TypeInheritanceList      = "inheritance_list"
	TypeInheritanceSpecifier = "inheritance_specifier"
	TypeContractBody         = "contract_body"
	TypeStateVariable        = "state_variable_declaration"
	TypeStruct               = "struct_definition"
	TypeStructBody           = "struct_body"
	TypeStructMember         = "struct_member"
	TypeEnum                 = "enum_definition"
	TypeEnumBody             = "enum_body"
	TypeEvent                = "event_definition"
	TypeError                = "error_definition"
	TypeUserType             = "user_defined_value_type"
	TypeUsing                = "using_directive"
	TypeUsingList            = "using_list"
	TypeUsingSymbol          = "using_symbol"
	TypeFunction             = "function_definition"
	TypeModifierDefinition   = "modifier_definition"
	TypeModifierInvocation   = "modifier_invocation"
	TypeOverride             = "override_specifier"
	TypeOverrideList         = "override_list"
	TypeParameterList        = "parameter_list"
	TypeParameter            = "parameter"
	TypeReturnParameters     = "return_parameters"

	TypeBlock              = "block"
	TypeUncheckedBlock     = "unchecked_block"
	TypeVarDeclStatement   = "variable_declaration_statement"
	TypeVarDecl            = "variable_declaration"
	TypeVarDeclTuple       = "variable_declaration_tuple"
	TypeExprStatement      = "expression_statement"
	TypeIf                 = "if_statement"
	TypeFor                = "for_statement"
	TypeWhile              = "while_statement"
	TypeDoWhile            = "do_while_statement"
	TypeReturn             = "return_statement"
	TypeEmit               = "emit_statement"
	TypeRevert             = "revert_statement"
	TypeBreak              = "break_statement"
	TypeContinue           = "continue_statement"
	TypeTry                = "try_statement"
	TypeCatch              = "catch_clause"
	TypeAssembly           = "assembly_statement"
	TypeAssemblyFlags      = "assembly_flags"
	TypePlaceholder        = "placeholder_statement"

	TypeAssignment        = "assignment_expression"
	TypeTernary           = "ternary_expression"
	TypeBinary            = "binary_expression"
	TypeUnary             = "unary_expression"
	TypePostfix           = "postfix_expression"
	TypeCall              = "call_expression"
	TypeCallOptions       = "call_options"
	TypeArgumentList      = "argument_list"
	TypeNamedArgumentList = "named_argument_list"
	TypeNamedArgument     = "named_argument"
	TypeMember            = "member_expression"
	TypeIndex             = "index_expression"
	TypeIndexRange        = "index_range_expression"
	TypeNew               = "new_expression"
	TypeTuple             = "tuple_expression"
	TypeArrayLiteral      = "array_literal"
	TypeLiteral           = "literal"

	TypeElementaryType = "elementary_type"
	TypeIdentifierPath = "identifier_path"
	TypeArrayType      = "array_type"
	TypeMappingType    = "mapping_type"
	TypeFunctionType   = "function_type"

	TypeIdentifier = "identifier"
	TypeToken      = "token"
	TypeVerbatim   = "verbatim"
)

// IsLeaf reports whether n carries a token instead of children.
func (n *Node) IsLeaf() bool { return n.Token != nil }

// Walk visits n and its descendants depth first, in source order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func newNode(typ string, children ...*Node) *Node {
	n := &Node{Type: typ, Children: make([]*Node, 0, len(children))}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.Span = n.Span.Cover(c.Span)
		n.Children = append(n.Children, c)
	}
	return n
}

// add appends c (if non-nil) and widens the span.
func (n *Node) add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		n.Span = n.Span.Cover(c.Span)
		n.Children = append(n.Children, c)
	}
	return n
}

func leafNode(tok token.Token) *Node {
	typ := TypeToken
	if tok.Kind == token.Ident {
		typ = TypeIdentifier
	}
	t := tok
	return &Node{Type: typ, Span: tok.Span, Token: &t}
}
