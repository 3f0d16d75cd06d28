package syntax

// Kind is the closed set of node kinds the formatter understands.
type Kind uint8

const (
	Invalid Kind = iota

	SourceUnit
	PragmaDirective
	ImportDirective
	ImportList
	ImportSymbol
	ContractDefinition
	InheritanceList
	InheritanceSpecifier
	ContractBody
	StateVariableDeclaration
	StructDefinition
	StructBody
	StructMember
	EnumDefinition
	EnumBody
	EventDefinition
	ErrorDefinition
	UserDefinedValueType
	UsingDirective
	UsingList
	UsingSymbol
	FunctionDefinition
	ModifierDefinition
	ModifierInvocation
	OverrideSpecifier
	OverrideList
	ParameterList
	Parameter
	ReturnParameters

	Block
	UncheckedBlock
	VariableDeclarationStatement
	VariableDeclaration
	VariableDeclarationTuple
	ExpressionStatement
	IfStatement
	ForStatement
	WhileStatement
	DoWhileStatement
	ReturnStatement
	EmitStatement
	RevertStatement
	BreakStatement
	ContinueStatement
	TryStatement
	CatchClause
	AssemblyStatement
	AssemblyFlags
	PlaceholderStatement

	Assignment
	Ternary
	BinaryExpression
	UnaryExpression
	PostfixExpression
	CallExpression
	CallOptions
	ArgumentList
	NamedArgumentList
	NamedArgument
	MemberExpression
	IndexExpression
	IndexRangeExpression
	NewExpression
	TupleExpression
	ArrayLiteral
	Literal

	ElementaryType
	IdentifierPath
	ArrayType
	MappingType
	FunctionType

	// Identifier is a leaf holding an identifier token.
	Identifier
	// Token is a leaf holding a keyword, literal or punctuation token.
	Token
	// Verbatim is a leaf whose text is reproduced byte for byte (pragma
	// values, assembly bodies).
	Verbatim

	kindCount
)

// Kinds returns every valid kind, Invalid excluded.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Invalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// IsLeaf reports whether nodes of kind k carry a token and no children.
func (k Kind) IsLeaf() bool {
	return k == Identifier || k == Token || k == Verbatim
}

// IsStatement reports whether k may appear directly inside a Block.
func (k Kind) IsStatement() bool {
	return k >= Block && k <= PlaceholderStatement && k != VariableDeclaration &&
		k != VariableDeclarationTuple && k != CatchClause && k != AssemblyFlags
}

// IsType reports whether k is a type expression.
func (k Kind) IsType() bool {
	return k >= ElementaryType && k <= FunctionType
}
