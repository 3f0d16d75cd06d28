package syntax

import "solfmt/internal/parser"

// kindNames doubles as the adapter table: raw node types are resolved
// through it and nothing else.
var kindNames = [...]string{
	SourceUnit:               parser.TypeSourceUnit,
	PragmaDirective:          parser.TypePragma,
	ImportDirective:          parser.TypeImport,
	ImportList:               parser.TypeImportList,
	ImportSymbol:             parser.TypeImportSymbol,
	ContractDefinition:       parser.TypeContract,
	InheritanceList:          parser.TypeInheritanceList,
	InheritanceSpecifier:     parser.TypeInheritanceSpecifier,
	ContractBody:             parser.TypeContractBody,
	StateVariableDeclaration: parser.TypeStateVariable,
	StructDefinition:         parser.TypeStruct,
	StructBody:               parser.TypeStructBody,
	StructMember:             parser.TypeStructMember,
	EnumDefinition:           parser.TypeEnum,
	EnumBody:                 parser.TypeEnumBody,
	EventDefinition:          parser.TypeEvent,
	ErrorDefinition:          parser.TypeError,
	UserDefinedValueType:     parser.TypeUserType,
	UsingDirective:           parser.TypeUsing,
	UsingList:                parser.TypeUsingList,
	UsingSymbol:              parser.TypeUsingSymbol,
	FunctionDefinition:       parser.TypeFunction,
	ModifierDefinition:       parser.TypeModifierDefinition,
	ModifierInvocation:       parser.TypeModifierInvocation,
	OverrideSpecifier:        parser.TypeOverride,
	OverrideList:             parser.TypeOverrideList,
	ParameterList:            parser.TypeParameterList,
	Parameter:                parser.TypeParameter,
	ReturnParameters:         parser.TypeReturnParameters,

	Block:                        parser.TypeBlock,
	UncheckedBlock:               parser.TypeUncheckedBlock,
	VariableDeclarationStatement: parser.TypeVarDeclStatement,
	VariableDeclaration:          parser.TypeVarDecl,
	VariableDeclarationTuple:     parser.TypeVarDeclTuple,
	ExpressionStatement:          parser.TypeExprStatement,
	IfStatement:                  parser.TypeIf,
	ForStatement:                 parser.TypeFor,
	WhileStatement:               parser.TypeWhile,
	DoWhileStatement:             parser.TypeDoWhile,
	ReturnStatement:              parser.TypeReturn,
	EmitStatement:                parser.TypeEmit,
	RevertStatement:              parser.TypeRevert,
	BreakStatement:               parser.TypeBreak,
	ContinueStatement:            parser.TypeContinue,
	TryStatement:                 parser.TypeTry,
	CatchClause:                  parser.TypeCatch,
	AssemblyStatement:            parser.TypeAssembly,
	AssemblyFlags:                parser.TypeAssemblyFlags,
	PlaceholderStatement:         parser.TypePlaceholder,

	Assignment:           parser.TypeAssignment,
	Ternary:              parser.TypeTernary,
	BinaryExpression:     parser.TypeBinary,
	UnaryExpression:      parser.TypeUnary,
	PostfixExpression:    parser.TypePostfix,
	CallExpression:       parser.TypeCall,
	CallOptions:          parser.TypeCallOptions,
	ArgumentList:         parser.TypeArgumentList,
	NamedArgumentList:    parser.TypeNamedArgumentList,
	NamedArgument:        parser.TypeNamedArgument,
	MemberExpression:     parser.TypeMember,
	IndexExpression:      parser.TypeIndex,
	IndexRangeExpression: parser.TypeIndexRange,
	NewExpression:        parser.TypeNew,
	TupleExpression:      parser.TypeTuple,
	ArrayLiteral:         parser.TypeArrayLiteral,
	Literal:              parser.TypeLiteral,

	ElementaryType: parser.TypeElementaryType,
	IdentifierPath: parser.TypeIdentifierPath,
	ArrayType:      parser.TypeArrayType,
	MappingType:    parser.TypeMappingType,
	FunctionType:   parser.TypeFunctionType,

	Identifier: parser.TypeIdentifier,
	Token:      parser.TypeToken,
	Verbatim:   parser.TypeVerbatim,

}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k := Invalid + 1; k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// KindOf resolves a raw node type.
func KindOf(rawType string) (Kind, bool) {
	k, ok := kindByName[rawType]
	return k, ok
}
