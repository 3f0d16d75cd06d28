package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// NumberLit is a decimal, hex or scientific number literal.
	NumberLit
	// StringLit is a quoted string, including unicode"..." literals.
	StringLit
	// HexStringLit is a hex"..." literal.
	HexStringLit

	KwAbstract    // abstract
	KwAs          // as
	KwAssembly    // assembly
	KwBreak       // break
	KwCalldata    // calldata
	KwCatch       // catch
	KwConstant    // constant
	KwConstructor // constructor
	KwContinue    // continue
	KwContract    // contract
	KwDelete      // delete
	KwDo          // do
	KwElse        // else
	KwEmit        // emit
	KwEnum        // enum
	KwEvent       // event
	KwExternal    // external
	KwFalse       // false
	KwFor         // for
	KwFunction    // function
	KwIf          // if
	KwImmutable   // immutable
	KwImport      // import
	KwInterface   // interface
	KwInternal    // internal
	KwIs          // is
	KwLibrary     // library
	KwMapping     // mapping
	KwMemory      // memory
	KwModifier    // modifier
	KwNew         // new
	KwOverride    // override
	KwPayable     // payable
	KwPragma      // pragma
	KwPrivate     // private
	KwPublic      // public
	KwPure        // pure
	KwReturn      // return
	KwReturns     // returns
	KwStorage     // storage
	KwStruct      // struct
	KwTrue        // true
	KwTry         // try
	KwType        // type
	KwUnchecked   // unchecked
	KwUsing       // using
	KwView        // view
	KwVirtual     // virtual
	KwWhile       // while

	Plus          // +
	Minus         // -
	Star          // *
	StarStar      // **
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	SarAssign     // >>>=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Sar           // >>>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	AndAnd        // &&
	OrOr          // ||
	PlusPlus      // ++
	MinusMinus    // --
	Question      // ?
	Colon         // :
	ColonAssign   // := (inline assembly)
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	Arrow         // -> (inline assembly)
	FatArrow      // =>
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	NumberLit:    "NumberLit",
	StringLit:    "StringLit",
	HexStringLit: "HexStringLit",
}

// String returns the constant name for literal classes and the lexeme for
// keywords and punctuation.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if s, ok := kindLexemes[k]; ok {
		return s
	}
	return "Kind(?)"
}
