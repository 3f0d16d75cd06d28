package token

var keywords = map[string]Kind{
	"abstract":    KwAbstract,
	"as":          KwAs,
	"assembly":    KwAssembly,
	"break":       KwBreak,
	"calldata":    KwCalldata,
	"catch":       KwCatch,
	"constant":    KwConstant,
	"constructor": KwConstructor,
	"continue":    KwContinue,
	"contract":    KwContract,
	"delete":      KwDelete,
	"do":          KwDo,
	"else":        KwElse,
	"emit":        KwEmit,
	"enum":        KwEnum,
	"event":       KwEvent,
	"external":    KwExternal,
	"false":       KwFalse,
	"for":         KwFor,
	"function":    KwFunction,
	"if":          KwIf,
	"immutable":   KwImmutable,
	"import":      KwImport,
	"interface":   KwInterface,
	"internal":    KwInternal,
	"is":          KwIs,
	"library":     KwLibrary,
	"mapping":     KwMapping,
	"memory":      KwMemory,
	"modifier":    KwModifier,
	"new":         KwNew,
	"override":    KwOverride,
	"payable":     KwPayable,
	"pragma":      KwPragma,
	"private":     KwPrivate,
	"public":      KwPublic,
	"pure":        KwPure,
	"return":      KwReturn,
	"returns":     KwReturns,
	"storage":     KwStorage,
	"struct":      KwStruct,
	"true":        KwTrue,
	"try":         KwTry,
	"type":        KwType,
	"unchecked":   KwUnchecked,
	"using":       KwUsing,
	"view":        KwView,
	"virtual":     KwVirtual,
	"while":       KwWhile,
}

var kindLexemes = func() map[Kind]string {
	m := map[Kind]string{
		Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/", Percent: "%",
		Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
		PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
		ShlAssign: "<<=", ShrAssign: ">>=", SarAssign: ">>>=",
		EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
		Shl: "<<", Shr: ">>", Sar: ">>>", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
		AndAnd: "&&", OrOr: "||", PlusPlus: "++", MinusMinus: "--",
		Question: "?", Colon: ":", ColonAssign: ":=", Semicolon: ";", Comma: ",", Dot: ".",
		Arrow: "->", FatArrow: "=>",
		LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	}
	for text, k := range keywords {
		m[k] = text
	}
	return m
}()

// LookupKeyword reports whether ident is a reserved word. Keywords are
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// DataLocation reports whether k is one of memory, storage or calldata.
func (k Kind) DataLocation() bool {
	return k == KwMemory || k == KwStorage || k == KwCalldata
}
